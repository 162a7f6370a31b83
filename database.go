package profctl

import "context"

// ProgressStatus reports how far an asynchronous Database operation has
// gotten, for Future.OnProgress subscribers (§4.5, §6).
type ProgressStatus struct {
	// Stage is a short human-readable phase name, e.g. "parsing", "indexing".
	Stage string
	// Completed and Total describe progress within Stage; Total is 0 when
	// the operation cannot estimate a total in advance.
	Completed int64
	Total     int64
}

// ProgressCallback is invoked zero or more times as an operation advances,
// always from the worker goroutine driving the operation, never
// concurrently with itself.
type ProgressCallback func(ProgressStatus)

// QueryRequest names an Arguments-driven table or compute query (§4.11):
// Name selects the fixed enumeration (e.g. "kernel_list", "roofline"), and
// Params carries its filter/bucketing arguments.
type QueryRequest struct {
	Name   string
	Params map[string]Cell
}

// SliceRequest asks the Database for every raw entry of one track's data
// falling in [StartTS, EndTS], chunked so a large slice can stream back
// incrementally (§4.7, §5).
type SliceRequest struct {
	TrackID  uint64
	StartTS  int64
	EndTS    int64
	MaxChunk int
}

// Database is the storage port every Controller operation ultimately calls
// through (§6): a trace file reader/writer in production, a fake in tests.
// Every method is asynchronous in spirit -- long-running implementations
// should poll ctx.Done() and honor cancellation promptly, mirroring the
// Future/worker relationship described in §4.5.
type Database interface {
	// Open loads a trace file's metadata (Timeline, Topology, StringTable)
	// enough to answer Controller queries; heavy row data may still be
	// read lazily by later calls.
	Open(ctx context.Context, path string, progress ProgressCallback) (*LoadResult, error)

	// Close releases any resources Open acquired.
	Close() error

	// ReadSlice streams raw track entries for a window, invoking onChunk
	// once per chunk in arrival order. The final bool tells onChunk whether
	// this is the last chunk.
	ReadSlice(ctx context.Context, req SliceRequest, onChunk func(chunk []rawEntry, final bool)) error

	// ReadEventProperty resolves one ExtData/ArgumentData list for an event,
	// fetched lazily since most events never have their properties read.
	ReadEventProperty(ctx context.Context, id EventID) ([]*ExtData, error)

	// ExecuteQuery runs a fixed-enumeration table query and returns its rows
	// as an Array of Cells, row-major (§4.11).
	ExecuteQuery(ctx context.Context, req QueryRequest, progress ProgressCallback) (*Array, error)

	// ExecuteComputeQuery runs a fixed-enumeration scalar/derived-metric
	// query (cache hit rate, fabric bandwidth, VGPR/SGPR, speed-of-light,
	// roofline) and returns the computed cells (§4.11).
	ExecuteComputeQuery(ctx context.Context, req QueryRequest, progress ProgressCallback) (*Array, error)

	// TrimSave writes out a trace file containing only the [StartTS, EndTS]
	// window, for the UI's "save trimmed trace" action.
	TrimSave(ctx context.Context, path string, startTS, endTS int64, progress ProgressCallback) error

	// ExportCSV writes a query's rows to path in CSV form.
	ExportCSV(ctx context.Context, path string, req QueryRequest, progress ProgressCallback) error

	// InterruptQuery best-effort cancels an in-flight query identified by
	// the connection handle its Future was bound with (the Graph id for a
	// graph fetch, 0 for a load or table fetch); it is always safe to call
	// even after the query has already finished.
	InterruptQuery(connHandle uint64) error
}

// LoadResult is everything Open hands back to seed a Controller: the
// Timeline/Topology/StringTable built from the trace file's metadata.
type LoadResult struct {
	Timeline   *Timeline
	Topology   *Topology
	StringTable *StringTable
}
