package xpool

import "errors"

// New 的参数错误，返回时附带越界取值。
var (
	ErrNilHandler       = errors.New("xpool: handler cannot be nil")
	ErrInvalidWorkers   = errors.New("xpool: invalid worker count")
	ErrInvalidQueueSize = errors.New("xpool: invalid queue size")
)

// ErrRejected 匹配 Submit 拒绝任务的所有原因。
// 任务被拒绝时所有权仍在调用方，调用方负责释放任务持有的资源。
var ErrRejected = errors.New("xpool: task rejected")

// Submit 的拒绝原因，errors.Is 对二者均匹配 [ErrRejected]。
var (
	ErrQueueFull   error = rejection("xpool: queue is full")
	ErrPoolStopped error = rejection("xpool: pool is stopped")
)

// ErrNilContext 表示 Shutdown 收到 nil context。
var ErrNilContext = errors.New("xpool: nil context")

type rejection string

func (r rejection) Error() string { return string(r) }

func (r rejection) Is(target error) bool { return target == ErrRejected }
