package event

// Message is one envelope on the channel: Publish, Subscribe or Shutdown
type Message interface {
	isMessage()
}

// Publish asks the dispatcher to fire Code with Context
// Reply is handed to every handler so it can publish follow-ups
type Publish struct {
	Code    Code
	Sender  Handle
	Context Context
	Reply   Sender
}

// Subscribe asks the dispatcher to register Handler for Code
type Subscribe struct {
	Code     Code
	Listener Handle
	Handler  Handler
}

// Shutdown stops dispatching; anything still queued is discarded
type Shutdown struct{}

func (Publish) isMessage()   {}
func (Subscribe) isMessage() {}
func (Shutdown) isMessage()  {}
