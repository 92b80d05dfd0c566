//go:build unit || e2e

package testutil

// Field returns a mutation that sets key on a request map before it is
// sent. A nil value removes the key entirely, which is how validation
// tests drop required fields.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
