package websocket

// Message is one incoming action request: the action name plus the
// move or command text when the action needs it.
type Message struct {
	Action  string `json:"action"`
	Move    string `json:"move,omitempty"`
	Command string `json:"command,omitempty"`
}

// Response carries the display text produced by the action.
type Response struct {
	Action string `json:"action"`
	Reply  string `json:"reply"`
}

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	payload []byte
}
