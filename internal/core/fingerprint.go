package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fxamacker/cbor/v2"

	"insight-specs/internal/types"
)

// FingerprintVersion changes whenever compiled output changes for the same
// input, invalidating cached documents.
const FingerprintVersion = "1"

type fingerprintInput struct {
	Version            string            `json:"version"`
	Context            types.SpecContext `json:"context"`
	GroupedAggregation bool              `json:"groupedAggregation"`
}

// Fingerprint returns a stable key for a compile input. The input is
// encoded as canonical CBOR so map ordering does not affect the key.
func Fingerprint(specContext types.SpecContext, options CompileOptions) (string, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("create canonical encoder").
			WithCause(err)
	}
	data, err := encMode.Marshal(fingerprintInput{
		Version:            FingerprintVersion,
		Context:            specContext,
		GroupedAggregation: options.GroupedAggregation,
	})
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("encode compile input").
			WithCause(err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("spec:%s", hex.EncodeToString(sum[:])), nil
}
