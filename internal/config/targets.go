package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	cierrors "github.com/ciwatch/cli/internal/errors"
	"github.com/ciwatch/cli/internal/models"
)

func errTargetNotFound(name string) error {
	return cierrors.NewResourceNotFoundError(nil,
		fmt.Sprintf("no target named %q", name),
		"Run 'ciw targets' to list saved targets")
}

// Target returns a saved target with its token. A target that is saved but
// logged out comes back with a zero token.
func (conf *Config) Target(name string) (models.Target, error) {
	entry, ok := conf.file.Targets[name]
	if !ok {
		return models.Target{}, errTargetNotFound(name)
	}

	target := models.Target{
		Name:     name,
		API:      entry.API,
		Team:     entry.Team,
		Insecure: entry.Insecure,
	}

	token, err := conf.tokens.Get(name)
	switch {
	case errors.Is(err, ErrNoToken):
	case err != nil:
		return models.Target{}, cierrors.NewConfigurationError(err, fmt.Sprintf("could not read the token of target %q", name))
	default:
		target.Token = models.Token{Value: token}
	}
	return target, nil
}

// CurrentTarget returns the target named override, or the selected target
// when override is empty.
func (conf *Config) CurrentTarget(override string) (models.Target, error) {
	name := override
	if name == "" {
		name = conf.file.SelectedTarget
	}
	if name == "" {
		return models.Target{}, cierrors.NewConfigurationError(nil, "no target selected",
			"Run 'ciw login --target <name> --api <url>' to add one",
			"Or pass --target to pick a saved target")
	}
	return conf.Target(name)
}

// Targets lists the saved targets ordered by name
func (conf *Config) Targets() ([]models.Target, error) {
	names := make([]string, 0, len(conf.file.Targets))
	for name := range conf.file.Targets {
		names = append(names, name)
	}
	slices.Sort(names)

	targets := make([]models.Target, 0, len(names))
	for _, name := range names {
		target, err := conf.Target(name)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

// PutTarget saves a target, replacing any target of the same name. The
// first target saved becomes the selected one.
func (conf *Config) PutTarget(target models.Target) error {
	if strings.TrimSpace(target.Name) == "" {
		return cierrors.NewValidationError(nil, "a target needs a name")
	}
	if target.API == "" {
		return cierrors.NewValidationError(nil, fmt.Sprintf("target %q needs an API URL", target.Name))
	}

	entry := targetConfig{
		API:      target.API,
		Team:     target.Team,
		Insecure: target.Insecure,
		Token:    conf.file.Targets[target.Name].Token,
	}
	conf.file.Targets[target.Name] = entry
	if conf.file.SelectedTarget == "" {
		conf.file.SelectedTarget = target.Name
	}
	if err := conf.write(); err != nil {
		return cierrors.NewConfigurationError(err, "could not write "+conf.path)
	}

	if target.Token.IsZero() {
		err := conf.tokens.Delete(target.Name)
		return wrapStorageError(err, target.Name)
	}
	return wrapStorageError(conf.tokens.Set(target.Name, target.Token.Value), target.Name)
}

// Logout forgets the token of a target but keeps the target
func (conf *Config) Logout(name string) error {
	if _, ok := conf.file.Targets[name]; !ok {
		return errTargetNotFound(name)
	}
	return wrapStorageError(conf.tokens.Delete(name), name)
}

// DeleteTarget removes a target and its token
func (conf *Config) DeleteTarget(name string) error {
	if _, ok := conf.file.Targets[name]; !ok {
		return errTargetNotFound(name)
	}
	if err := conf.tokens.Delete(name); err != nil {
		return wrapStorageError(err, name)
	}

	delete(conf.file.Targets, name)
	if conf.file.SelectedTarget == name {
		conf.file.SelectedTarget = ""
	}
	if err := conf.write(); err != nil {
		return cierrors.NewConfigurationError(err, "could not write "+conf.path)
	}
	return nil
}

func wrapStorageError(err error, name string) error {
	if err == nil {
		return nil
	}
	return cierrors.NewConfigurationError(err, fmt.Sprintf("could not store the token of target %q", name),
		fmt.Sprintf("Set %s=file to keep tokens in the config file instead", EnvVarTokenStorage))
}
