package models

// UngroupedName is the group label used for jobs that belong to no group
const UngroupedName = "ungrouped"

// Job represents a pipeline job and its most recent builds
type Job struct {
	Name          string   `json:"name" yaml:"name"`
	Groups        []string `json:"groups" yaml:"groups"`
	FinishedBuild *Build   `json:"finished_build,omitempty" yaml:"finished_build,omitempty"`
	NextBuild     *Build   `json:"next_build,omitempty" yaml:"next_build,omitempty"`
}

// Ungrouped reports whether the job is not a member of any group
func (j Job) Ungrouped() bool {
	return len(j.Groups) == 0
}

// CurrentBuild is the build that best describes the job right now: the
// pending or running build if there is one, otherwise the last finished one.
func (j Job) CurrentBuild() *Build {
	if j.NextBuild != nil {
		return j.NextBuild
	}
	return j.FinishedBuild
}

// GroupJobs buckets jobs by group name. Group names are returned in order of
// first appearance with UngroupedName last. A job in several groups appears
// in each of them.
func GroupJobs(jobs []Job) ([]string, map[string][]Job) {
	var names []string
	groups := make(map[string][]Job)
	var ungrouped []Job

	for _, j := range jobs {
		if j.Ungrouped() {
			ungrouped = append(ungrouped, j)
			continue
		}
		for _, g := range j.Groups {
			if _, seen := groups[g]; !seen {
				names = append(names, g)
			}
			groups[g] = append(groups[g], j)
		}
	}

	if len(ungrouped) > 0 {
		names = append(names, UngroupedName)
		groups[UngroupedName] = append(groups[UngroupedName], ungrouped...)
	}

	return names, groups
}
