// Package signal defines the synthetic signal codes widgets use to notify
// each other and the synchronous bus that delivers them.
package signal

import (
	"fmt"

	"github.com/odvcencio/intes/pkg/ui/runtime"
)

// Code identifies a synthetic signal. Codes live in a range disjoint from
// the toolkit's native message codes so a signal can never be mistaken for
// real input.
type Code int

// NativeLimit is the first code above the toolkit's native range.
const NativeLimit = runtime.NativeCodeMax + 1

// SyntheticBase is the first synthetic code.
const SyntheticBase Code = 0x1000

// Fails to compile if the synthetic range overlaps the native one.
const _ = uint(int(SyntheticBase) - NativeLimit)

const (
	MouseMove Code = SyntheticBase + iota
	MouseDown
	MouseUp
	MouseOut
	MouseIn
	ButtonAClicked
	ButtonBClicked
	KeyDown

	codeEnd
)

var codeNames = [...]string{
	MouseMove - SyntheticBase:      "MouseMove",
	MouseDown - SyntheticBase:      "MouseDown",
	MouseUp - SyntheticBase:        "MouseUp",
	MouseOut - SyntheticBase:       "MouseOut",
	MouseIn - SyntheticBase:        "MouseIn",
	ButtonAClicked - SyntheticBase: "ButtonAClicked",
	ButtonBClicked - SyntheticBase: "ButtonBClicked",
	KeyDown - SyntheticBase:        "KeyDown",
}

// Fails to compile if a code is added without a name.
var _ = [1]struct{}{}[len(codeNames)-int(codeEnd-SyntheticBase)]

// IsSynthetic reports whether c is one of the defined synthetic codes.
func (c Code) IsSynthetic() bool {
	return c >= SyntheticBase && c < codeEnd
}

// String returns the code's name, or a numeric form for unknown codes.
func (c Code) String() string {
	if c.IsSynthetic() {
		return codeNames[c-SyntheticBase]
	}
	return fmt.Sprintf("Code(%#x)", int(c))
}

// All returns every synthetic code in definition order.
func All() []Code {
	out := make([]Code, 0, codeEnd-SyntheticBase)
	for c := SyntheticBase; c < codeEnd; c++ {
		out = append(out, c)
	}
	return out
}

// MouseCodes are the codes the mouse tracking surface posts.
var MouseCodes = []Code{MouseMove, MouseDown, MouseUp, MouseOut, MouseIn}
