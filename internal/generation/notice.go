package generation

// NoticeEmptyPrompt is shown when a blank prompt is submitted.
const NoticeEmptyPrompt = "Please enter a prompt"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient user-facing message. Notices are a side channel and
// never feed back into the lifecycle state.
type Notice struct {
	Kind    Kind
	Level   Level
	Message string
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}

// StateObserver may be implemented by a Notifier. ObserveState is called for
// every state change in order, and a resting state is always observed before
// the notice it produces.
type StateObserver interface {
	ObserveState(kind Kind, s State)
}
