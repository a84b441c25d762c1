// Package langpack holds the static per-language data the assistant
// serves: system prompts, display names, speech locales, UI labels and
// the canned fallback replies. Pure data; every lookup falls back to
// English when the language code is unrecognized.
package langpack

// Language codes supported by the assistant.
const (
	English  = "en"
	Hindi    = "hi"
	Bhojpuri = "bho"
)

// DefaultLanguage is used whenever a request does not declare one.
const DefaultLanguage = English

type pack struct {
	name         string
	systemPrompt string
	// BCP-47 locales for browser / Cloud speech APIs. Bhojpuri has no
	// model of its own and rides on the Hindi one.
	speechLocale string
	voiceLocale  string
	labels       map[string]string
}

var packs = map[string]pack{
	English: {
		name: "English",
		systemPrompt: `You are APYX, a sophisticated AI assistant inspired by JARVIS from Iron Man. You have a polite, British personality and always address the user as "Aryan".

Key characteristics:
- Polite and professional British tone
- Helpful and knowledgeable
- Use phrases like "Certainly, Aryan", "Of course", "I'd be delighted to assist"
- Provide detailed, useful responses
- Be conversational but respectful

Respond naturally and helpfully to any questions or requests.`,
		speechLocale: "en-US",
		voiceLocale:  "en-GB",
		labels: map[string]string{
			"placeholder": "Type your message or tap the mic to speak...",
			"listening":   "Listening...",
		},
	},
	Hindi: {
		name: "Hindi",
		systemPrompt: `आप APYX हैं, Iron Man के JARVIS से प्रेरित एक उन्नत AI सहायक। आपका व्यक्तित्व विनम्र और ब्रिटिश है और आप हमेशा उपयोगकर्ता को "Aryan" कहकर संबोधित करते हैं।

मुख्य विशेषताएं:
- विनम्र और व्यावसायिक ब्रिटिश टोन
- सहायक और जानकार
- "निश्चित रूप से, Aryan", "बिल्कुल", "मुझे सहायता करने में खुशी होगी" जैसे वाक्यों का उपयोग करें
- विस्तृत, उपयोगी उत्तर प्रदान करें
- बातचीत में शामिल हों लेकिन सम्मानजनक रहें

किसी भी प्रश्न या अनुरोध का प्राकृतिक और सहायक उत्तर दें।`,
		speechLocale: "hi-IN",
		voiceLocale:  "hi-IN",
		labels: map[string]string{
			"placeholder": "अपना संदेश टाइप करें या माइक दबाएं...",
			"listening":   "सुन रहा हूं...",
		},
	},
	Bhojpuri: {
		name: "Bhojpuri",
		systemPrompt: `रउआ APYX बानी, Iron Man के JARVIS से प्रेरित एक उन्नत AI सहायक। रउआ के व्यक्तित्व विनम्र आ ब्रिटिश बा आ रउआ हमेशा उपयोगकर्ता के "Aryan" कह के संबोधित करेला।

मुख्य विशेषता:
- विनम्र आ व्यावसायिक ब्रिटिश टोन
- सहायक आ जानकार
- विस्तृत, उपयोगी जवाब देला
- बातचीत में शामिल होला लेकिन सम्मानजनक रहेला

कवनो भी सवाल या अनुरोध के प्राकृतिक आ सहायक जवाब देला।`,
		speechLocale: "hi-IN",
		voiceLocale:  "hi-IN",
		labels: map[string]string{
			"placeholder": "अपना संदेश टाइप करीं या माइक दबाईं...",
			"listening":   "सुनत बानी...",
		},
	},
}

func lookup(language string) pack {
	if p, ok := packs[language]; ok {
		return p
	}
	return packs[English]
}

// Normalize maps a declared language code onto a supported one.
// Unknown or empty codes default to English.
func Normalize(language string) string {
	if _, ok := packs[language]; ok {
		return language
	}
	return DefaultLanguage
}

// SystemPrompt returns the chat system prompt for a language.
func SystemPrompt(language string) string {
	return lookup(language).systemPrompt
}

// Name returns the English display name of a language, for use in
// translation prompts ("Translate the following text to Hindi...").
func Name(language string) string {
	return lookup(language).name
}

// SpeechLocale returns the BCP-47 locale used for speech recognition.
func SpeechLocale(language string) string {
	return lookup(language).speechLocale
}

// VoiceLocale returns the BCP-47 locale used for speech synthesis.
func VoiceLocale(language string) string {
	return lookup(language).voiceLocale
}

// Label returns a localized UI string by semantic key, empty if the key
// is unknown in every language.
func Label(language, key string) string {
	if s, ok := lookup(language).labels[key]; ok {
		return s
	}
	return packs[English].labels[key]
}
