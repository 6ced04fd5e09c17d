package practicum

import "fmt"

// Status is a homework review state as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps each recognized status to the sentence shown to the user.
// The texts are fixed; the reviewer-facing product is Russian-language.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// FormatStatus composes the notification text for one homework record.
// Pure and deterministic: same record in, same sentence out.
func FormatStatus(rec any) (string, error) {
	m, ok := rec.(map[string]any)
	if !ok {
		return "", &Error{Kind: KindMissingName}
	}
	name, ok := m["homework_name"].(string)
	if !ok || name == "" {
		return "", &Error{Kind: KindMissingName}
	}
	status, _ := m["status"].(string)
	verdict, ok := Verdicts[Status(status)]
	if !ok {
		return "", &Error{Kind: KindUnknownStatus, Code: status}
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}
