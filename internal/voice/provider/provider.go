// Package provider enumerates voices from cloud text-to-speech services so
// they can be offered next to the built-in catalog.
package provider

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Options configures the cloud listers
type Options struct {
	// Region for Amazon Polly (default: us-east-1)
	Region string
	// Language keeps only voices of this language. "en" matches every
	// English region, "en-GB" only British English. Empty keeps all.
	Language string
	// Endpoint overrides the Google Cloud TTS endpoint (emulators, proxies)
	Endpoint string
}

// matchesLanguage reports whether code belongs to want.
func matchesLanguage(code, want string) bool {
	if want == "" {
		return true
	}
	wantTag, err := language.Parse(want)
	if err != nil {
		return false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return false
	}

	wantBase, _ := wantTag.Base()
	base, _ := tag.Base()
	if wantBase != base {
		return false
	}

	wantRegion, conf := wantTag.Region()
	if conf != language.Exact {
		return true
	}
	region, _ := tag.Region()
	return region == wantRegion
}

// displayGender renders a provider gender enum as "Female", "Male", ...
func displayGender(g string) string {
	if g == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(cases.Lower(language.English).String(g))
}
