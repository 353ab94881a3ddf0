package models

// Phrase tables for the notification emails. Unknown locales fall back to
// English, unknown keys fall back to the key itself so a missing entry is
// visible rather than blank.
var translations = map[string]map[string]string{
	"en": {
		"booking_scheduled": "Your booking has been scheduled",
		"booking_declined":  "Your booking request has been declined",
		"join_meeting":      "Join the meeting",
		"organizer":         "Organizer",
		"when":              "When",
		"where":             "Where",
		"reason":            "Reason",
	},
	"es": {
		"booking_scheduled": "Tu reserva ha sido programada",
		"booking_declined":  "Tu solicitud de reserva ha sido rechazada",
		"join_meeting":      "Unirse a la reunión",
		"organizer":         "Organizador",
		"when":              "Cuándo",
		"where":             "Dónde",
		"reason":            "Motivo",
	},
	"fr": {
		"booking_scheduled": "Votre réservation a été planifiée",
		"booking_declined":  "Votre demande de réservation a été refusée",
		"join_meeting":      "Rejoindre la réunion",
		"organizer":         "Organisateur",
		"when":              "Quand",
		"where":             "Où",
		"reason":            "Raison",
	},
}

func GetTranslation(locale string) TranslateFunc {
	table, ok := translations[locale]
	if !ok {
		table = translations["en"]
	}
	return func(key string) string {
		if phrase, ok := table[key]; ok {
			return phrase
		}
		if phrase, ok := translations["en"][key]; ok {
			return phrase
		}
		return key
	}
}
