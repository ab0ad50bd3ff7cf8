package runtime

import "time"

// Participant - участник группового звонка
type Participant struct {
	UserID   string
	UserName string
	Conn     Conn
}

// CallRoom - комната группового звонка. Хост и упорядоченный список
// участников; идентичности в списке не повторяются.
type CallRoom struct {
	ID           string
	Host         string
	Participants []Participant
	CreatedAt    time.Time
}
