package llm

import "context"

type purposeKey struct{}

// purposeUnknown is recorded when a caller never labelled the request.
const purposeUnknown = "unknown"

// WithPurpose labels ctx with what the request is for. The logging
// middleware copies the label onto each request event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom reads the label set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	p, _ := ctx.Value(purposeKey{}).(string)
	if p == "" {
		return purposeUnknown
	}
	return p
}
