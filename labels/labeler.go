package labels

import (
	"errors"
	"fmt"
)

// Label lengths accepted by the TOUGH record layouts
const (
	MinLength = 5
	MaxLength = 9
)

var ErrCapacity = errors.New("cell index exceeds label capacity")

const (
	alpha = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	alnum = "123456789" + alpha
)

// Capacity returns the number of distinct labels of the given length
func Capacity(length int) int {
	c := len(alpha) * len(alnum) * len(alnum)
	for k := 0; k < length-3; k++ {
		c *= 10
	}
	return c
}

// AutoLength returns the shortest label length able to name n cells
func AutoLength(n int) int {
	length := MinLength
	for length < MaxLength && Capacity(length) < n {
		length++
	}
	return length
}

// Label returns the label of cell i. The first character is a letter, the
// next two are drawn from 1-9A-Z, the remainder is the zero padded decimal
// suffix. Label(0, 5) is "A1100".
func Label(i, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", fmt.Errorf("label length must be in [%d,%d], got %d", MinLength, MaxLength, length)
	}
	if i < 0 || i >= Capacity(length) {
		return "", fmt.Errorf("%w: index %d, capacity %d for length %d", ErrCapacity, i, Capacity(length), length)
	}
	n := length - 3
	pow := 1
	for k := 0; k < n; k++ {
		pow *= 10
	}
	q1, r1 := i/pow, i%pow
	q2, r2 := q1/len(alnum), q1%len(alnum)
	q3, r3 := q2/len(alnum), q2%len(alnum)
	return fmt.Sprintf("%c%c%c%0*d", alpha[q3], alnum[r3], alnum[r2], n, r1), nil
}

// Labels returns the labels of n cells. A zero length selects AutoLength(n).
func Labels(n, length int) ([]string, error) {
	if length == 0 {
		length = AutoLength(n)
	}
	if n > Capacity(length) {
		return nil, fmt.Errorf("%w: %d cells, capacity %d for length %d", ErrCapacity, n, Capacity(length), length)
	}
	out := make([]string, n)
	for i := range out {
		label, err := Label(i, length)
		if err != nil {
			return nil, err
		}
		out[i] = label
	}
	return out, nil
}
