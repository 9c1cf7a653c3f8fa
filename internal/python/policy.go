package python

import "fmt"

// EnvironmentPreference controls which interpreter environments discovery
// may consider.
type EnvironmentPreference int

const (
	// OnlySystem excludes interpreters belonging to an active virtual
	// environment. Project initialization pins against the system
	// interpreter, never a project-local environment.
	OnlySystem EnvironmentPreference = iota
	// AnyEnvironment places no restriction on the interpreter's environment.
	AnyEnvironment
)

// Preference orders system interpreters against managed (fetched) ones.
type Preference int

const (
	// PreferManaged tries managed interpreters first, then system.
	PreferManaged Preference = iota
	// PreferSystem tries system interpreters first, then managed.
	PreferSystem
	// OnlyManaged never considers system interpreters.
	OnlyManaged
	// OnlySystemInterpreters never considers managed interpreters.
	OnlySystemInterpreters
)

// ParsePreference parses the CLI/config spelling of a Preference.
func ParsePreference(s string) (Preference, error) {
	switch s {
	case "managed", "":
		return PreferManaged, nil
	case "system":
		return PreferSystem, nil
	case "only-managed":
		return OnlyManaged, nil
	case "only-system":
		return OnlySystemInterpreters, nil
	default:
		return 0, fmt.Errorf("invalid python preference %q (expected only-managed, managed, system, or only-system)", s)
	}
}

// String returns the CLI spelling of the preference.
func (p Preference) String() string {
	switch p {
	case PreferSystem:
		return "system"
	case OnlyManaged:
		return "only-managed"
	case OnlySystemInterpreters:
		return "only-system"
	default:
		return "managed"
	}
}

// FetchPolicy controls whether a missing interpreter may be downloaded.
type FetchPolicy int

const (
	// FetchAutomatic downloads a matching interpreter when discovery finds
	// none.
	FetchAutomatic FetchPolicy = iota
	// FetchManual only uses interpreters that were fetched explicitly.
	FetchManual
	// FetchNever forbids downloads entirely.
	FetchNever
)

// ParseFetchPolicy parses the CLI/config spelling of a FetchPolicy.
func ParseFetchPolicy(s string) (FetchPolicy, error) {
	switch s {
	case "automatic", "":
		return FetchAutomatic, nil
	case "manual":
		return FetchManual, nil
	case "never":
		return FetchNever, nil
	default:
		return 0, fmt.Errorf("invalid python fetch policy %q (expected automatic, manual, or never)", s)
	}
}

// String returns the CLI spelling of the fetch policy.
func (f FetchPolicy) String() string {
	switch f {
	case FetchManual:
		return "manual"
	case FetchNever:
		return "never"
	default:
		return "automatic"
	}
}
