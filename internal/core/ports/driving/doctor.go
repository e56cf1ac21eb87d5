package driving

import "context"

// CheckResult is one connectivity probe's outcome.
type CheckResult struct {
	// Name identifies the backend or tool probed.
	Name string

	// OK indicates the probe succeeded.
	OK bool

	// Detail carries version info on success or the failure reason.
	Detail string

	// Required marks probes whose failure should fail the doctor run.
	Required bool
}

// Doctor probes every external collaborator: embedding backend, LLM
// backend, vector store, and the extraction binaries.
type Doctor interface {
	// Run executes all probes and returns their results in a stable order.
	Run(ctx context.Context) []CheckResult
}
