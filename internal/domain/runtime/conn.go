package runtime

// Conn - живое realtime соединение. За интерфейсом прячется
// gorilla-вебсокет, в тестах - мок.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}
