package normalization

import (
  "strings"
)

func ParseInputString(input string) string {
  normalized := strings.ToLower(strings.TrimSpace(input))
  return normalized
}

// TrimInput trims without lowercasing, for case-sensitive fields like
// passwords and free-text details.
func TrimInput(input string) string {
  return strings.TrimSpace(input)
}

func ParseInputStringPtr(input *string) *string {
  if input == nil {
    return nil
  }
  normalized := strings.ToLower(strings.TrimSpace(*input))
  return &normalized
}
