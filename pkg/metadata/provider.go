package metadata

import (
	"fmt"
	"strings"
)

type Provider string

const (
	ProviderEmail     Provider = "email"
	ProviderGoogle    Provider = "google"
	ProviderGithub    Provider = "github"
	ProviderFacebook  Provider = "facebook"
	ProviderTwitter   Provider = "twitter"
	ProviderInstagram Provider = "instagram"
)

func NewProvider(value string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(value)))
	if !p.IsValid() {
		return p, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s, %s, %s",
			ProviderEmail, ProviderGoogle, ProviderGithub, ProviderFacebook, ProviderTwitter, ProviderInstagram,
		)
	}
	return p, nil
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderEmail, ProviderGoogle, ProviderGithub, ProviderFacebook, ProviderTwitter, ProviderInstagram:
		return true
	default:
		return false
	}
}

// IsFederated reports whether accounts from this provider carry a providerId.
func (p Provider) IsFederated() bool {
	return p.IsValid() && p != ProviderEmail
}

func (p Provider) String() string {
	return string(p)
}
