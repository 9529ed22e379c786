package types

const (
	ExitNormal    int = 0
	ExitErrored   int = 1
	// The remote service rejected the job or reported it unsolvable
	ExitRejected  int = 2
	// The caller gave up waiting
	ExitAbandoned int = 3
)
