package termrender

// ForwardEvents exposes the event pump to external tests.
var ForwardEvents = forwardEvents
