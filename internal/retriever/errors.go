package retriever

import "errors"

var (
	// ErrDumpFileAlreadyExists names the case where
	// <data_dir>/utxo_dump.dat is already present. EnsureDump does not
	// return it: it reuses the existing file and succeeds without calling
	// the node, and no other code path returns it either.
	ErrDumpFileAlreadyExists = errors.New("retriever: dump file already exists")

	// ErrNoDumpFileInDataDir is returned by PopulateSet when P1 has not
	// been run and no dump file is present to read.
	ErrNoDumpFileInDataDir = errors.New("retriever: no dump file in data dir")

	// ErrNoSearchPerformed is returned by FetchDetails/Finds before
	// Search has run.
	ErrNoSearchPerformed = errors.New("retriever: no search has been performed yet")

	// ErrDetailsNotFetched is returned by DetailedFinds before
	// FetchDetails has run.
	ErrDetailsNotFetched = errors.New("retriever: details have not been fetched yet")

	// ErrSetNotPopulated is returned by Search before PopulateSet has
	// run.
	ErrSetNotPopulated = errors.New("retriever: uspk set has not been populated yet")

	// ErrWorkerFailed names a failed match worker goroutine. No code path
	// returns it: match workers do not recover panics, and a worker's
	// derivation error is wrapped and returned by Search directly.
	ErrWorkerFailed = errors.New("retriever: worker failed")

	// ErrRPCClientRequired is returned by EnsureDump/FetchDetails when
	// the Retriever was constructed without an RPC client but a phase
	// that needs the node is invoked.
	ErrRPCClientRequired = errors.New("retriever: rpc client required for this phase")
)
