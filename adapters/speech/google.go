package speech

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"apyx-assistant/langpack"
)

// GoogleSpeech transcribes short audio clips for clients without a
// browser speech API. One-shot recognition; audio is LINEAR16 at 16kHz.
type GoogleSpeech struct {
	client *speech.Client
}

func NewGoogleSpeech(ctx context.Context) (*GoogleSpeech, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google speech client: %w", err)
	}
	return &GoogleSpeech{client: client}, nil
}

// Transcribe recognizes audio in the given assistant language and
// returns the best transcript.
func (g *GoogleSpeech) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    langpack.SpeechLocale(language),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognizing audio: %w", err)
	}

	var transcript strings.Builder
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) > 0 {
			transcript.WriteString(alts[0].GetTranscript())
		}
	}
	return transcript.String(), nil
}

func (g *GoogleSpeech) Close() error {
	return g.client.Close()
}
