package locales

import (
	"testing"
)

// TestMessagesEnUSNotEmpty verifies that English translations are not empty
func TestMessagesEnUSNotEmpty(t *testing.T) {
	if len(MessagesEnUS) == 0 {
		t.Fatal("MessagesEnUS should not be empty")
	}
}

// TestMessagesSwKENotEmpty verifies that Swahili translations are not empty
func TestMessagesSwKENotEmpty(t *testing.T) {
	if len(MessagesSwKE) == 0 {
		t.Fatal("MessagesSwKE should not be empty")
	}
}

// TestTranslationKeysConsistency verifies all languages have the same keys
func TestTranslationKeysConsistency(t *testing.T) {
	if len(MessagesEnUS) != len(MessagesSwKE) {
		t.Errorf("Translation key count mismatch: EN=%d, SW=%d", len(MessagesEnUS), len(MessagesSwKE))
	}

	for key := range MessagesEnUS {
		if _, exists := MessagesSwKE[key]; !exists {
			t.Errorf("Key %q exists in English but missing in Swahili", key)
		}
	}

	for key := range MessagesSwKE {
		if _, exists := MessagesEnUS[key]; !exists {
			t.Errorf("Key %q exists in Swahili but missing in English", key)
		}
	}
}

// TestTranslationValuesNotEmpty verifies no translation value is blank
func TestTranslationValuesNotEmpty(t *testing.T) {
	for key, value := range MessagesEnUS {
		if value == "" {
			t.Errorf("English translation for %q is empty", key)
		}
	}
	for key, value := range MessagesSwKE {
		if value == "" {
			t.Errorf("Swahili translation for %q is empty", key)
		}
	}
}

// TestSettingsMessageKeys verifies the settings keys the handlers rely on
func TestSettingsMessageKeys(t *testing.T) {
	required := []string{
		"settings.saved",
		"settings.invalid_payload",
		"settings.version_conflict",
		"auth.invalid_key",
		"auth.key_required",
		"import.invalid_format",
	}

	for _, key := range required {
		if _, exists := MessagesEnUS[key]; !exists {
			t.Errorf("Required key %q missing in English", key)
		}
		if _, exists := MessagesSwKE[key]; !exists {
			t.Errorf("Required key %q missing in Swahili", key)
		}
	}
}
