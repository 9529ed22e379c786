package types

import "fmt"

type (
	LanguagePool string
	TaskStatus   string
	Verdict      string
)

const (
	// Workers speaking english
	LanguagePoolEn LanguagePool = "en"
	// Workers speaking russian
	LanguagePoolRu LanguagePool = "ru"

	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusReady      TaskStatus = "ready"

	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

func ParseLanguagePool(s string) (LanguagePool, error) {
	switch LanguagePool(s) {
	case LanguagePoolEn, LanguagePoolRu:
		return LanguagePool(s), nil
	default:
		return "", fmt.Errorf("unknown language pool: %q", s)
	}
}

// Route of the report endpoint for the verdict
func (v Verdict) Route() (string, error) {
	switch v {
	case VerdictCorrect:
		return "/reportCorrect", nil
	case VerdictIncorrect:
		return "/reportIncorrect", nil
	default:
		return "", fmt.Errorf("unknown verdict: %q", string(v))
	}
}
