package codec

import (
	"fmt"

	"github.com/FelixBlom97/EloStealo/app/game"
)

// Format names the byte layout of a stored action log.
type Format string

const (
	FormatCompact Format = "compact"
	FormatLegacy  Format = "legacy"
)

// DecodeFormat is the single read path for stored games. Writes always use
// the compact format.
func DecodeFormat(f Format, data []byte) ([]game.Action, error) {
	switch f {
	case FormatCompact, "":
		return Decode(data)
	case FormatLegacy:
		return DecodeLegacy(data)
	default:
		return nil, fmt.Errorf("format %q: %w", f, ErrDecoding)
	}
}
