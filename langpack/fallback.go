package langpack

import "apyx-assistant/domain"

// Canned replies, keyed by language then classification. These are the
// last line of defense: Fallback must always return non-empty text.
var fallbacks = map[string]map[domain.Classification]string{
	English: {
		domain.ClassificationQuotaExceeded: "I apologize, Aryan, but I'm currently experiencing high demand. The AI service has reached its usage limit. Please try again later or contact support to upgrade the service plan.",
		domain.ClassificationUnauthorized:  "I'm sorry, Aryan, but there seems to be an authentication issue with the AI service. Please check the API key configuration.",
		domain.ClassificationGeneralError:  "I apologize, Aryan, but I'm experiencing technical difficulties at the moment. Please try again in a few moments.",
	},
	Hindi: {
		domain.ClassificationQuotaExceeded: "मुझे खेद है, आर्यन, लेकिन फिलहाल मैं उच्च मांग का सामना कर रहा हूं। AI सेवा अपनी उपयोग सीमा तक पहुंच गई है। कृपया बाद में पुनः प्रयास करें।",
		domain.ClassificationUnauthorized:  "मुझे खेद है, आर्यन, लेकिन AI सेवा के साथ प्रमाणीकरण की समस्या लगती है। कृपया API key कॉन्फ़िगरेशन जांचें।",
		domain.ClassificationGeneralError:  "मुझे खेद है, आर्यन, लेकिन फिलहाल मैं तकनीकी कठिनाइयों का सामना कर रहा हूं। कृपया कुछ क्षणों में पुनः प्रयास करें।",
	},
	Bhojpuri: {
		domain.ClassificationQuotaExceeded: "हमके माफ करीं आर्यन, लेकिन अभी हमके बहुत जादा मांग के सामना करे के पड़ रहल बा। AI सेवा अपना उपयोग सीमा तक पहुंच गईल बा।",
		domain.ClassificationUnauthorized:  "हमके माफ करीं आर्यन, लेकिन AI सेवा के साथ प्रमाणीकरण के समस्या लागत बा।",
		domain.ClassificationGeneralError:  "हमके माफ करीं आर्यन, लेकिन अभी हमके तकनीकी कठिनाई के सामना करे के पड़ रहल बा।",
	},
}

// Fallback returns the canned reply for (language, classification).
// Unknown languages use the English row, unknown classifications the
// general-error row.
func Fallback(language string, classification domain.Classification) string {
	row, ok := fallbacks[language]
	if !ok {
		row = fallbacks[English]
	}
	if text, ok := row[classification]; ok {
		return text
	}
	return row[domain.ClassificationGeneralError]
}
