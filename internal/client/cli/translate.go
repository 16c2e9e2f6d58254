package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/transkeeper/internal/language"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
)

// readFile is a seam for tests.
var readFile = os.ReadFile

// Translate prompts for text and languages, prints the translation and
// saves the audio when speech was requested. With reverse the output is
// also translated back to English.
func (a *App) Translate(ctx context.Context, reverse bool) error {
	text, err := getSimpleText(a.reader, "Enter text to translate", a.out)
	if err != nil {
		return err
	}
	source, err := getSimpleText(a.reader, "Source language (name or code, empty for auto)", a.out)
	if err != nil {
		return err
	}
	target, err := getSimpleText(a.reader, "Target language (name or code)", a.out)
	if err != nil {
		return err
	}
	speak, err := getSimpleText(a.reader, "Speak the translation? (y/N)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Translate(ctx, &pb.TranslateRequest{
		Text:    text,
		Source:  source,
		Target:  target,
		Speak:   isYes(speak),
		Reverse: reverse,
	})
	if err != nil {
		return err
	}

	a.printTranslation(resp)
	return nil
}

func (a *App) printTranslation(resp *pb.TranslateResponse) {
	if resp.Time != "" {
		fmt.Fprintf(a.out, "[%s] ", resp.Time)
	}
	fmt.Fprintf(a.out, "%s -> %s\n", language.Display(resp.Source), language.Display(resp.Target))
	fmt.Fprintf(a.out, "Translated: %s\n", resp.Output)
	if resp.Reverse != "" {
		fmt.Fprintf(a.out, "Back to English: %s\n", resp.Reverse)
	}
	a.saveAudio(resp.Audio, resp.AudioFile)
	a.printWarnings(resp.Warnings)
}

func (a *App) saveAudio(audio *pb.Audio, name string) {
	if audio == nil || len(audio.Data) == 0 {
		return
	}
	if name == "" {
		name = fmt.Sprintf("translation_%s.%s", a.now().Format("20060102_150405"), audio.Format)
	}
	path, err := a.saveFile(name, audio.Data)
	if err != nil {
		fmt.Fprintf(a.out, "Warning: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Audio saved to %s\n", path)
}

func (a *App) printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(a.out, "Warning: %s\n", w)
	}
}

// Speak synthesizes text in the chosen language and saves the clip.
func (a *App) Speak(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Enter text to speak", a.out)
	if err != nil {
		return err
	}
	lang, err := getSimpleText(a.reader, "Language (name or code, empty to detect)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Speak(ctx, text, lang)
	if err != nil {
		return err
	}
	a.saveAudio(resp.Audio, resp.AudioFile)
	return nil
}

// audioFormat derives the wire format from a file extension.
func audioFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}

// Transcribe sends the audio file at path for recognition and optionally
// translates the transcript.
func (a *App) Transcribe(ctx context.Context, path string) error {
	data, err := readFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	target, err := getSimpleText(a.reader, "Translate the transcript to (empty to skip)", a.out)
	if err != nil {
		return err
	}

	resp, err := a.client.Transcribe(ctx, &pb.Audio{Data: data, Format: audioFormat(path)}, target, false)
	if err != nil {
		return err
	}

	if resp.Transcript == "" {
		fmt.Fprintln(a.out, "Nothing was recognised")
	} else {
		fmt.Fprintf(a.out, "Transcript: %s\n", resp.Transcript)
	}
	a.printWarnings(resp.Warnings)

	if resp.Translation != nil {
		a.printTranslation(resp.Translation)
	}
	return nil
}
