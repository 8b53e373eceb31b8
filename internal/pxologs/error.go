package pxologs

var _ error = (*Error)(nil)

// Error adds a user-friendly help message to specific errors.
type Error struct {
	help string
	msg  string
}

// Help will displayed to the user if this specific error is ever returned.
func (e *Error) Help() string {
	return e.help
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.msg
}

var (
	// ErrAWSConfig is returned when the shared AWS configuration could not be loaded.
	ErrAWSConfig = &Error{
		msg: "unable to load AWS configuration",
		help: `The AWS configuration for the requested profile could not be loaded.
Ensure the profile passed with --profile exists in ~/.aws/config or ~/.aws/credentials.`,
	}

	// ErrAWSCLI is returned when the cli transport is selected but the aws binary cannot be found.
	ErrAWSCLI = &Error{
		msg: "aws command line tool not found",
		help: `The cli transport runs the aws command line tool, which could not be located.
Install it (https://aws.amazon.com/cli/), set PXOLOGS_AWS_CLI to its path, or use --transport=sdk.`,
	}

	// ErrTransport is returned when an unknown transport is requested.
	ErrTransport = &Error{
		msg:  "unknown transport",
		help: `Supported transports are "sdk" (default) and "cli".`,
	}

	// ErrTimezone is returned when PXOLOGS_TIMEZONE is not a valid time zone.
	ErrTimezone = &Error{
		msg:  "invalid timezone",
		help: `PXOLOGS_TIMEZONE must be an IANA time zone name such as "America/Chicago", or empty for the local zone.`,
	}

	// ErrTargetsFailed is returned with --fail-on-error when at least one target failed.
	ErrTargetsFailed = &Error{
		msg: "one or more targets failed",
		help: `Every failing target was reported above.
Without --fail-on-error pxologs exits successfully regardless of per-target failures.`,
	}
)
