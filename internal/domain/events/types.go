package events

import "encoding/json"

// Входящие типы событий
const (
	TypeUserOnline            = "user_online"
	TypeJoinGroup             = "join_group"
	TypeJoinDM                = "join_dm"
	TypeSendMessage           = "send_message"
	TypeTyping                = "typing"
	TypeMessageRead           = "message_read"
	TypeSendGroupMessage      = "send_group_message"
	TypeSendNotification      = "send_notification"
	TypePostReaction          = "post_reaction"
	TypeStoryView             = "story_view"
	TypeCallUser              = "call_user"
	TypeAnswerCall            = "answer_call"
	TypeRejectCall            = "reject_call"
	TypeEndCall               = "end_call"
	TypeWebRTCOffer           = "webrtc_offer"
	TypeWebRTCAnswer          = "webrtc_answer"
	TypeWebRTCICECandidate    = "webrtc_ice_candidate"
	TypeCreateGroupCall       = "create_group_call"
	TypeJoinGroupCall         = "join_group_call"
	TypeLeaveGroupCall        = "leave_group_call"
	TypeGroupCallOffer        = "group_call_offer"
	TypeGroupCallAnswer       = "group_call_answer"
	TypeGroupCallICECandidate = "group_call_ice_candidate"
	TypeStartStream           = "start_stream"
	TypeJoinStream            = "join_stream"
	TypeLeaveStream           = "leave_stream"
	TypeStreamComment         = "stream_comment"
	TypeStreamGift            = "stream_gift"
	TypeEndStream             = "end_stream"
	TypeGetNotifications      = "get_notifications"
)

// Исходящие типы событий
const (
	TypeUserStatus          = "user_status"
	TypeNewMessage          = "new_message"
	TypeUserTyping          = "user_typing"
	TypeReceiveMessage      = "receive_message"
	TypeNotification        = "notification"
	TypeStoryViewed         = "story_viewed"
	TypeIncomingCall        = "incoming_call"
	TypeCallAnswered        = "call_answered"
	TypeCallRejected        = "call_rejected"
	TypeCallEnded           = "call_ended"
	TypeGroupCallCreated    = "group_call_created"
	TypeUserJoinedGroupCall = "user_joined_group_call"
	TypeUserLeftGroupCall   = "user_left_group_call"
	TypeGroupCallEnded      = "group_call_ended"
	TypeNewStream           = "new_stream"
	TypeViewerJoined        = "viewer_joined"
	TypeViewerLeft          = "viewer_left"
	TypeNewStreamComment    = "new_stream_comment"
	TypeNewStreamGift       = "new_stream_gift"
	TypeStreamEnded         = "stream_ended"
	TypeNewNotification     = "new_notification"
	TypeNotificationsList   = "notifications_list"
)

// Message - общий конверт события
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewMessage собирает исходящее событие с уже сериализованной нагрузкой
func NewMessage(eventType string, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Type: eventType, Data: data}, nil
}

// UserOnlineEvent - клиент объявляет свою идентичность
type UserOnlineEvent struct {
	UserID string `json:"userId"`
}

func (e UserOnlineEvent) Validate() error {
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// JoinGroupEvent - подписка на комнату группового чата
type JoinGroupEvent struct {
	GroupID string `json:"groupId"`
}

func (e JoinGroupEvent) Validate() error {
	if e.GroupID == "" {
		return errMissingField("groupId")
	}
	return nil
}

// JoinDMEvent - подписка на личную комнату пользователя
type JoinDMEvent struct {
	UserID string `json:"userId"`
}

func (e JoinDMEvent) Validate() error {
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// DirectMessageEvent - личное сообщение, доставляется получателю как new_message
type DirectMessageEvent struct {
	MessageID  string `json:"messageId,omitempty"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content,omitempty"`
}

func (e DirectMessageEvent) Validate() error {
	if e.ReceiverID == "" {
		return errMissingField("receiverId")
	}
	return nil
}

// TypingEvent - индикатор набора текста
type TypingEvent struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

func (e TypingEvent) Validate() error {
	if e.ReceiverID == "" {
		return errMissingField("receiverId")
	}
	return nil
}

// UserTypingEvent - исходящая часть typing
type UserTypingEvent struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessageReadEvent - отметка о прочтении, уходит отправителю сообщения
type MessageReadEvent struct {
	MessageID string `json:"messageId"`
	SenderID  string `json:"senderId"`
}

func (e MessageReadEvent) Validate() error {
	if e.SenderID == "" {
		return errMissingField("senderId")
	}
	return nil
}

// GroupMessageEvent - сообщение в групповой чат
type GroupMessageEvent struct {
	GroupID  string `json:"groupId"`
	SenderID string `json:"senderId"`
	Content  string `json:"content,omitempty"`
}

func (e GroupMessageEvent) Validate() error {
	if e.GroupID == "" {
		return errMissingField("groupId")
	}
	return nil
}

// SendNotificationEvent - уведомление конкретному пользователю,
// payload не интерпретируется
type SendNotificationEvent struct {
	UserID  string          `json:"userId"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (e SendNotificationEvent) Validate() error {
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// PostReactionEvent - реакция на пост, рассылается всем подключенным
type PostReactionEvent struct {
	PostID   string `json:"postId"`
	UserID   string `json:"userId"`
	Reaction string `json:"reaction,omitempty"`
}

func (e PostReactionEvent) Validate() error {
	if e.PostID == "" {
		return errMissingField("postId")
	}
	return nil
}

// StoryViewEvent - просмотр истории, уходит владельцу истории
type StoryViewEvent struct {
	StoryID      string `json:"storyId"`
	StoryOwnerID string `json:"storyOwnerId"`
	ViewerID     string `json:"viewerId"`
}

func (e StoryViewEvent) Validate() error {
	if e.StoryOwnerID == "" {
		return errMissingField("storyOwnerId")
	}
	return nil
}

// CallUserEvent - инициация звонка 1:1
type CallUserEvent struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	CallType string          `json:"callType,omitempty"`
	Signal   json.RawMessage `json:"signal,omitempty"`
	CallID   string          `json:"callId,omitempty"`
}

func (e CallUserEvent) Validate() error {
	if e.To == "" {
		return errMissingField("to")
	}
	return nil
}

// IncomingCallEvent - исходящая часть call_user
type IncomingCallEvent struct {
	From     string          `json:"from"`
	CallType string          `json:"callType,omitempty"`
	Signal   json.RawMessage `json:"signal,omitempty"`
	CallID   string          `json:"callId,omitempty"`
}

// AnswerCallEvent - ответ на звонок
type AnswerCallEvent struct {
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal,omitempty"`
}

func (e AnswerCallEvent) Validate() error {
	if e.To == "" {
		return errMissingField("to")
	}
	return nil
}

// CallAnsweredEvent - исходящая часть answer_call
type CallAnsweredEvent struct {
	Signal json.RawMessage `json:"signal,omitempty"`
}

// CallTargetEvent - reject_call и end_call несут только адресата
type CallTargetEvent struct {
	To string `json:"to"`
}

func (e CallTargetEvent) Validate() error {
	if e.To == "" {
		return errMissingField("to")
	}
	return nil
}

// WebRTCSignalEvent - низкоуровневая сигнализация 1:1;
// offer/answer/candidate непрозрачны и внутрь не разбираются
type WebRTCSignalEvent struct {
	To        string          `json:"to"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

func (e WebRTCSignalEvent) Validate() error {
	if e.To == "" {
		return errMissingField("to")
	}
	return nil
}

// WebRTCSignalForwardEvent - пересылаемая сигнализация 1:1
type WebRTCSignalForwardEvent struct {
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// CreateGroupCallEvent - создание комнаты группового звонка
type CreateGroupCallEvent struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

func (e CreateGroupCallEvent) Validate() error {
	if e.RoomID == "" {
		return errMissingField("roomId")
	}
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// JoinGroupCallEvent - вход в комнату группового звонка
type JoinGroupCallEvent struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

func (e JoinGroupCallEvent) Validate() error {
	if e.RoomID == "" {
		return errMissingField("roomId")
	}
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// LeaveGroupCallEvent - выход из комнаты группового звонка
type LeaveGroupCallEvent struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func (e LeaveGroupCallEvent) Validate() error {
	if e.RoomID == "" {
		return errMissingField("roomId")
	}
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// GroupCallSignalEvent - сигнализация внутри группового звонка,
// адресат ищется по списку участников комнаты
type GroupCallSignalEvent struct {
	RoomID    string          `json:"roomId"`
	To        string          `json:"to"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

func (e GroupCallSignalEvent) Validate() error {
	if e.RoomID == "" {
		return errMissingField("roomId")
	}
	if e.To == "" {
		return errMissingField("to")
	}
	return nil
}

// GroupCallCreatedEvent - комната группового звонка создана
type GroupCallCreatedEvent struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

// GroupCallMemberEvent - участник вошел или вышел из группового звонка
type GroupCallMemberEvent struct {
	RoomID   string `json:"roomId"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// GroupCallEndedEvent - комната группового звонка опустела
type GroupCallEndedEvent struct {
	RoomID string `json:"roomId"`
}

// GroupCallSignalForwardEvent - пересылаемая сигнализация группового звонка
type GroupCallSignalForwardEvent struct {
	RoomID    string          `json:"roomId"`
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

// StartStreamEvent - начало трансляции
type StartStreamEvent struct {
	StreamID string `json:"streamId"`
	UserID   string `json:"userId"`
	Title    string `json:"title,omitempty"`
}

func (e StartStreamEvent) Validate() error {
	if e.StreamID == "" {
		return errMissingField("streamId")
	}
	return nil
}

// StreamViewerEvent - вход/выход зрителя трансляции
type StreamViewerEvent struct {
	StreamID string `json:"streamId"`
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
}

func (e StreamViewerEvent) Validate() error {
	if e.StreamID == "" {
		return errMissingField("streamId")
	}
	return nil
}

// StreamCommentEvent - комментарий в трансляции, содержимое непрозрачно
type StreamCommentEvent struct {
	StreamID string          `json:"streamId"`
	Comment  json.RawMessage `json:"comment"`
}

func (e StreamCommentEvent) Validate() error {
	if e.StreamID == "" {
		return errMissingField("streamId")
	}
	return nil
}

// StreamGiftEvent - подарок в трансляции, содержимое непрозрачно
type StreamGiftEvent struct {
	StreamID string          `json:"streamId"`
	Gift     json.RawMessage `json:"gift"`
}

func (e StreamGiftEvent) Validate() error {
	if e.StreamID == "" {
		return errMissingField("streamId")
	}
	return nil
}

// EndStreamEvent - завершение трансляции
type EndStreamEvent struct {
	StreamID string `json:"streamId"`
}

func (e EndStreamEvent) Validate() error {
	if e.StreamID == "" {
		return errMissingField("streamId")
	}
	return nil
}

// GetNotificationsEvent - запрос пропущенных уведомлений
type GetNotificationsEvent struct {
	UserID string `json:"userId"`
}

func (e GetNotificationsEvent) Validate() error {
	if e.UserID == "" {
		return errMissingField("userId")
	}
	return nil
}

// UserStatusEvent - онлайн/оффлайн статус пользователя
type UserStatusEvent struct {
	UserID   string `json:"userId"`
	IsOnline bool   `json:"isOnline"`
}

// NewStreamEvent - анонс новой трансляции
type NewStreamEvent struct {
	StreamID string `json:"streamId"`
	UserID   string `json:"userId"`
	Title    string `json:"title,omitempty"`
}
