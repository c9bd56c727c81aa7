package build

import (
	"fmt"
	"strings"

	cierrors "github.com/ciwatch/cli/internal/errors"
)

// jobRef names a job as pipeline/job
type jobRef struct {
	pipeline string
	job      string
}

func (r jobRef) String() string {
	return r.pipeline + "/" + r.job
}

func parseJobRef(s string) (jobRef, error) {
	pipeline, job, ok := strings.Cut(s, "/")
	if !ok || pipeline == "" || job == "" || strings.Contains(job, "/") {
		return jobRef{}, cierrors.NewValidationError(nil,
			fmt.Sprintf("%q is not a job reference", s),
			"Name the job as <pipeline>/<job>, e.g. website/deploy")
	}
	return jobRef{pipeline: pipeline, job: job}, nil
}
