package lib

import (
	"math/rand"
	"sync"
	"time"
)

var (
	rnd    = rand.New(rand.NewSource(time.Now().UnixNano()))
	rndMut sync.Mutex
)

// RandomLowercaseString returns n random characters from a-z. It is safe for
// concurrent use.
func RandomLowercaseString(n int) string {
	if n <= 0 {
		return ""
	}
	bytes := make([]byte, n)

	rndMut.Lock()
	rnd.Read(bytes)
	rndMut.Unlock()

	for i, b := range bytes {
		bytes[i] = b%26 + 97
	}
	return string(bytes)
}
