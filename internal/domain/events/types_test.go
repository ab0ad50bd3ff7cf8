package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageEnvelope(t *testing.T) {
	msg, err := NewMessage(TypeUserStatus, UserStatusEvent{UserID: "42", IsOnline: true})
	require.NoError(t, err)

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"user_status","data":{"userId":"42","isOnline":true}}`, string(raw))
}

func TestEventValidation(t *testing.T) {
	tests := []struct {
		name    string
		event   interface{ Validate() error }
		wantErr string
	}{
		{"user_online ok", UserOnlineEvent{UserID: "42"}, ""},
		{"user_online empty", UserOnlineEvent{}, "userId"},
		{"call_user ok", CallUserEvent{To: "7"}, ""},
		{"call_user no target", CallUserEvent{From: "42"}, "to"},
		{"join_group_call no room", JoinGroupCallEvent{UserID: "2"}, "roomId"},
		{"join_group_call no user", JoinGroupCallEvent{RoomID: "room1"}, "userId"},
		{"group_call_signal no target", GroupCallSignalEvent{RoomID: "room1"}, "to"},
		{"stream_comment no stream", StreamCommentEvent{}, "streamId"},
		{"typing no receiver", TypingEvent{SenderID: "42"}, "receiverId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
