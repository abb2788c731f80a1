package observability

// Apply outcomes reported by the poller.
const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeRetry     = "retry"
	OutcomeInvalid   = "invalid"
)

type Metrics interface {
	ObservePoll(fetched, applied int, durMs float64, ok bool)
	ObserveApply(code, outcome string)
	ObserveRemote(op string, durMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveCredentialRefresh(ok bool)
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObservePoll(int, int, float64, bool)      {}
func (Noop) ObserveApply(string, string)              {}
func (Noop) ObserveRemote(string, float64, bool)      {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveCredentialRefresh(bool)            {}
