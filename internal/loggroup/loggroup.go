// Package loggroup derives CloudWatch log group names for the deployed functions.
package loggroup

import "fmt"

const (
	// EnvProd is the production environment name.
	EnvProd = "Prod"

	// LocaleOhio is used by every non-production environment.
	LocaleOhio = "UsOh"
	// LocaleOregon is used by production.
	LocaleOregon = "UsOr"

	// RegionOhio is the region backing LocaleOhio.
	RegionOhio = "us-east-2"
)

// Name returns the fully-qualified log group name for a function.
// The function name is not validated; an unknown function simply yields a group the log service reports as missing.
func Name(locale, env, function string) string {
	return fmt.Sprintf("/aws/lambda/Pxo001%s%sLambdaFunction%sJar01", locale, env, function)
}

// LocaleFor picks the locale code for a deployment.
// When a region is supplied it decides the locale, otherwise the environment does.
func LocaleFor(env, region string) string {
	if region != "" {
		if region == RegionOhio {
			return LocaleOhio
		}
		return LocaleOregon
	}

	if env == EnvProd {
		return LocaleOregon
	}
	return LocaleOhio
}
