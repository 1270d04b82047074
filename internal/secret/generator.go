package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidParameter is returned when Generate is called with arguments it cannot satisfy
var ErrInvalidParameter = errors.New("invalid parameter")

// Class selects the character family a secret is drawn from
type Class int

const (
	Numeric Class = iota
	Alpha
	Alphanumeric
	// AlphanumericExtended adds symbols that dotenv parsers read literally
	AlphanumericExtended
)

// CaseMode controls letter case in generated secrets
type CaseMode int

const (
	Lower CaseMode = iota
	Upper
	Mixed
)

const (
	digits  = "0123456789"
	lowers  = "abcdefghijklmnopqrstuvwxyz"
	uppers  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	symbols = "!%&*()-_+[]{}<>?~^@.,:;|"
)

func (c Class) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case Alpha:
		return "alpha"
	case Alphanumeric:
		return "alphanumeric"
	case AlphanumericExtended:
		return "alphanumeric-extended"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Alphabet returns the characters Generate draws from for the class and case mode
func Alphabet(class Class, mode CaseMode) (string, error) {
	var letters string
	switch mode {
	case Lower:
		letters = lowers
	case Upper:
		letters = uppers
	case Mixed:
		letters = lowers + uppers
	default:
		return "", fmt.Errorf("%w: unknown case mode %d", ErrInvalidParameter, int(mode))
	}

	var b strings.Builder
	switch class {
	case Numeric:
		b.WriteString(digits)
	case Alpha:
		b.WriteString(letters)
	case Alphanumeric:
		b.WriteString(letters)
		b.WriteString(digits)
	case AlphanumericExtended:
		b.WriteString(letters)
		b.WriteString(digits)
		b.WriteString(symbols)
	default:
		return "", fmt.Errorf("%w: unknown class %s", ErrInvalidParameter, class)
	}
	return b.String(), nil
}

// Generate returns a random string of exactly length characters
func Generate(length int, class Class, mode CaseMode) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: length must be positive, got %d", ErrInvalidParameter, length)
	}

	alphabet, err := Alphabet(class, mode)
	if err != nil {
		return "", err
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
