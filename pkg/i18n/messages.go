package i18n

// Messages is the user-facing text of one language.
type Messages struct {
	Title           string
	IntroHeading    string
	IntroBody       string
	BirthDateLabel  string
	VisualizeButton string
	Helper          string
	DateError       string
	YourLifeInWeeks string
	Born            string
	WeeksLived      string
	WeeksRemaining  string
	ShareThisView   string
	Copy            string
	Copied          string
	CopyFailed      string
	Back            string
	Past            string
	CurrentWeek     string
	Future          string
	LanguageToggle  string
	Features        []string
}

var tables = map[Language]*Messages{
	English: {
		Title:           "4000 Weeks",
		IntroHeading:    "Time is your most non‑renewable resource.",
		IntroBody:       "Inspired by Oliver Burkeman's book, this mini-app lets you visualise every week of a typical human lifespan. Enter your birth date to see the weeks you've already lived and the ones still ahead.",
		BirthDateLabel:  "When were you born?",
		VisualizeButton: "Show my life in weeks",
		Helper:          "You can always come back and adjust this later.",
		DateError:       "Please select a date in the past.",
		YourLifeInWeeks: "Your life in weeks",
		Born:            "Born",
		WeeksLived:      "Weeks lived",
		WeeksRemaining:  "Weeks remaining",
		ShareThisView:   "Share this view",
		Copy:            "Copy link",
		Copied:          "Copied!",
		CopyFailed:      "Copy failed",
		Back:            "Back to introduction",
		Past:            "Past weeks",
		CurrentWeek:     "Current week",
		Future:          "Future weeks",
		LanguageToggle:  "DE",
		Features: []string{
			"Beautifully branded to match the app icon.",
			"Responsive grid that adapts to any screen size.",
			"Shareable link with your language preference.",
		},
	},
	German: {
		Title:           "4000 Wochen",
		IntroHeading:    "Zeit ist deine knappste Ressource.",
		IntroBody:       "Dieses kleine Tool, inspiriert von Oliver Burkemans Buch, visualisiert jede Woche einer typischen Lebensspanne. Gib dein Geburtsdatum ein und sieh die Wochen, die du schon gelebt hast – und die, die noch kommen.",
		BirthDateLabel:  "Wann wurdest du geboren?",
		VisualizeButton: "Zeige mein Leben in Wochen",
		Helper:          "Du kannst das später jederzeit ändern.",
		DateError:       "Bitte wähle ein Datum in der Vergangenheit.",
		YourLifeInWeeks: "Dein Leben in Wochen",
		Born:            "Geboren",
		WeeksLived:      "Gelebte Wochen",
		WeeksRemaining:  "Verbleibende Wochen",
		ShareThisView:   "Diese Ansicht teilen",
		Copy:            "Link kopieren",
		Copied:          "Kopiert!",
		CopyFailed:      "Kopieren fehlgeschlagen",
		Back:            "Zur Einführung zurück",
		Past:            "Vergangene Wochen",
		CurrentWeek:     "Aktuelle Woche",
		Future:          "Zukünftige Wochen",
		LanguageToggle:  "EN",
		Features: []string{
			"Markenauftritt passend zum App-Icon.",
			"Responsive Raster für jede Bildschirmgröße.",
			"Teilbarer Link mit deiner Spracheinstellung.",
		},
	},
}
