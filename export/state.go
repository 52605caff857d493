package export

// State 是一次导出所处的阶段。Done 与 Failed 为终态。
type State int

const (
	StateIdle State = iota
	StateRendering
	StateEncoding
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateEncoding:
		return "encoding"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal 报告状态是否为终态。
func (s State) Terminal() bool { return s == StateDone || s == StateFailed }

// StateHook 在每次状态变化时被调用，job 为本次导出的 ID。
type StateHook func(job string, state State)
