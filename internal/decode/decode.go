package decode

import (
	"strings"

	"github.com/ciwatch/cli/internal/models"
)

// legacyOAuthType is what servers before 4.0 report for external providers.
// The provider is then named by display_name.
const legacyOAuthType = "oauth"

// result converts a typed error into the error interface without producing
// a non-nil interface holding a nil pointer.
func result[T any](v T, err *Error) (T, error) {
	if err != nil {
		return v, err
	}
	return v, nil
}

// Token decodes the body of the team token endpoint, e.g. {"value":"abc"}
func Token(data []byte) (models.Token, error) {
	return result(token(data))
}

func token(data []byte) (models.Token, *Error) {
	o, err := parseObject(data)
	if err != nil {
		return models.Token{}, err
	}
	value, err := o.requiredString("value")
	if err != nil {
		return models.Token{}, err
	}
	return models.Token{Value: value}, nil
}

// Info decodes the server info document
func Info(data []byte) (models.Info, error) {
	return result(info(data))
}

func info(data []byte) (models.Info, *Error) {
	o, err := parseObject(data)
	if err != nil {
		return models.Info{}, err
	}
	version, err := o.requiredString("version")
	if err != nil {
		return models.Info{}, err
	}
	workerVersion, _, err := o.optionalString("worker_version")
	if err != nil {
		return models.Info{}, err
	}
	return models.Info{Version: version, WorkerVersion: workerVersion}, nil
}

// Teams decodes the team list. Elements that are not objects with a string
// name are skipped rather than failing the list.
func Teams(data []byte) ([]models.Team, error) {
	return result(teams(data))
}

func teams(data []byte) ([]models.Team, *Error) {
	elements, err := parseArray(data)
	if err != nil {
		return nil, err
	}
	list := make([]models.Team, 0, len(elements))
	for _, el := range elements {
		o, err := asObject(el)
		if err != nil {
			continue
		}
		name, err := o.requiredString("name")
		if err != nil {
			continue
		}
		list = append(list, models.Team{Name: name})
	}
	return list, nil
}

// AuthMethods decodes a team's auth methods. Elements with an unknown or
// missing type are skipped rather than failing the list.
func AuthMethods(data []byte) ([]models.AuthMethod, error) {
	return result(authMethods(data))
}

func authMethods(data []byte) ([]models.AuthMethod, *Error) {
	elements, err := parseArray(data)
	if err != nil {
		return nil, err
	}
	list := make([]models.AuthMethod, 0, len(elements))
	for _, el := range elements {
		method, err := authMethod(el)
		if err != nil {
			continue
		}
		list = append(list, method)
	}
	return list, nil
}

func authMethod(raw []byte) (models.AuthMethod, *Error) {
	o, err := asObject(raw)
	if err != nil {
		return models.AuthMethod{}, err
	}
	typeName, err := o.requiredString("type")
	if err != nil {
		return models.AuthMethod{}, err
	}
	displayName, _, err := o.optionalString("display_name")
	if err != nil {
		return models.AuthMethod{}, err
	}

	authType, ok := models.ParseAuthType(typeName)
	if !ok {
		if strings.ToLower(strings.TrimSpace(typeName)) != legacyOAuthType {
			return models.AuthMethod{}, mismatch("type", "auth method type", typeName)
		}
		authType = models.AuthTypeGitHub
	}

	url, ok, err := o.optionalString("url")
	if err != nil {
		return models.AuthMethod{}, err
	}
	if !ok {
		if url, _, err = o.optionalString("auth_url"); err != nil {
			return models.AuthMethod{}, err
		}
	}

	return models.AuthMethod{Type: authType, URL: url, DisplayName: displayName}, nil
}

// Pipelines decodes the pipelines of a team. One malformed element fails the list.
func Pipelines(data []byte) ([]models.Pipeline, error) {
	return result(pipelines(data))
}

func pipelines(data []byte) ([]models.Pipeline, *Error) {
	elements, err := parseArray(data)
	if err != nil {
		return nil, err
	}
	list := make([]models.Pipeline, 0, len(elements))
	for i, el := range elements {
		o, err := asObject(el)
		if err != nil {
			return nil, err.within(index(i))
		}
		p, err := pipeline(o)
		if err != nil {
			return nil, err.within(index(i))
		}
		list = append(list, p)
	}
	return list, nil
}

func pipeline(o object) (models.Pipeline, *Error) {
	name, err := o.requiredString("name")
	if err != nil {
		return models.Pipeline{}, err
	}
	paused, err := o.optionalBool("paused")
	if err != nil {
		return models.Pipeline{}, err
	}
	public, err := o.optionalBool("public")
	if err != nil {
		return models.Pipeline{}, err
	}
	return models.Pipeline{Name: name, Paused: paused, Public: public}, nil
}

// Build decodes a single build, as returned when one is triggered
func Build(data []byte) (models.Build, error) {
	o, err := parseObject(data)
	if err != nil {
		return models.Build{}, err
	}
	return result(build(o))
}

// Builds decodes a build list. One malformed element fails the list.
func Builds(data []byte) ([]models.Build, error) {
	return result(builds(data))
}

func builds(data []byte) ([]models.Build, *Error) {
	elements, err := parseArray(data)
	if err != nil {
		return nil, err
	}
	list := make([]models.Build, 0, len(elements))
	for i, el := range elements {
		o, err := asObject(el)
		if err != nil {
			return nil, err.within(index(i))
		}
		b, err := build(o)
		if err != nil {
			return nil, err.within(index(i))
		}
		list = append(list, b)
	}
	return list, nil
}

// build reads a build object. Only start_time and end_time may be absent.
func build(o object) (models.Build, *Error) {
	var b models.Build
	var err *Error

	if b.ID, err = o.requiredInt("id"); err != nil {
		return models.Build{}, err
	}
	if b.Name, err = o.requiredString("name"); err != nil {
		return models.Build{}, err
	}
	if b.TeamName, err = o.requiredString("team_name"); err != nil {
		return models.Build{}, err
	}
	if b.JobName, err = o.requiredString("job_name"); err != nil {
		return models.Build{}, err
	}
	if b.PipelineName, err = o.requiredString("pipeline_name"); err != nil {
		return models.Build{}, err
	}

	status, err := o.requiredString("status")
	if err != nil {
		return models.Build{}, err
	}
	var ok bool
	if b.Status, ok = models.ParseBuildStatus(status); !ok {
		return models.Build{}, mismatch("status", "build status", status)
	}

	if b.StartTime, err = o.optionalUint("start_time"); err != nil {
		return models.Build{}, err
	}
	if b.EndTime, err = o.optionalUint("end_time"); err != nil {
		return models.Build{}, err
	}

	return b, nil
}

// Jobs decodes the jobs of a pipeline. One malformed element, including a
// malformed nested build, fails the list.
func Jobs(data []byte) ([]models.Job, error) {
	return result(jobs(data))
}

func jobs(data []byte) ([]models.Job, *Error) {
	elements, err := parseArray(data)
	if err != nil {
		return nil, err
	}
	list := make([]models.Job, 0, len(elements))
	for i, el := range elements {
		o, err := asObject(el)
		if err != nil {
			return nil, err.within(index(i))
		}
		j, err := job(o)
		if err != nil {
			return nil, err.within(index(i))
		}
		list = append(list, j)
	}
	return list, nil
}

func job(o object) (models.Job, *Error) {
	var j models.Job
	var err *Error

	if j.Name, err = o.requiredString("name"); err != nil {
		return models.Job{}, err
	}
	if j.Groups, err = o.optionalStrings("groups"); err != nil {
		return models.Job{}, err
	}
	if j.FinishedBuild, err = nestedBuild(o, "finished_build"); err != nil {
		return models.Job{}, err
	}
	if j.NextBuild, err = nestedBuild(o, "next_build"); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func nestedBuild(o object, name string) (*models.Build, *Error) {
	nested, ok, err := o.optionalObject(name)
	if err != nil || !ok {
		return nil, err
	}
	b, err := build(nested)
	if err != nil {
		return nil, err.within(name)
	}
	return &b, nil
}
