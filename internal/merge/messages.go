package merge

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message is a user-facing status or placeholder text. The English text
// doubles as the catalog key.
type Message string

const (
	MsgNone               Message = ""
	MsgNoImage            Message = "No image selected"
	MsgNotImage           Message = "Please select an image file"
	MsgMerging            Message = "Merging… please wait a moment."
	MsgDone               Message = "Merge complete! The A3 landscape JPEG has been downloaded."
	MsgEncoderUnsupported Message = "The output image could not be produced in this environment. (Please try another browser.)"
	MsgFailed             Message = "An error occurred. Please select the images again and retry."
)

// Page labels.
const (
	LabelTitle  Message = "A3 landscape side-by-side merge"
	LabelLeft   Message = "Left image"
	LabelRight  Message = "Right image"
	LabelMerge  Message = "Merge and download JPEG"
	LabelAccess Message = "Open on another device"
)

// Supported lists the languages messages are available in.
var Supported = []language.Tag{language.English, language.Japanese}

var messages = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ja := map[Message]string{
		MsgNoImage:            "画像未選択",
		MsgNotImage:           "画像ファイルを選択してください",
		MsgMerging:            "合成中… 少しお待ちください。",
		MsgDone:               "合成完了！ A3横JPEGをダウンロードしました。",
		MsgEncoderUnsupported: "ブラウザが画像出力に対応していません。（別ブラウザを試してください）",
		MsgFailed:             "エラーが発生しました。もう一度画像を選択してお試しください。",
		LabelTitle:            "A3横 左右合成",
		LabelLeft:             "左の画像",
		LabelRight:            "右の画像",
		LabelMerge:            "合成してJPEGをダウンロード",
		LabelAccess:           "別の端末で開く",
	}
	for key, text := range ja {
		_ = b.SetString(language.English, string(key), string(key))
		_ = b.SetString(language.Japanese, string(key), text)
	}
	return b
}

// Localize renders m in the given language, falling back to English.
func (m Message) Localize(tag language.Tag) string {
	if m == MsgNone {
		return ""
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(string(m))
}

// MatchLanguage picks a supported language for an Accept-Language header.
// fallback wins when the header is empty or matches nothing.
func MatchLanguage(acceptLanguage string, fallback language.Tag) language.Tag {
	prefs := []language.Tag{fallback}
	for _, t := range Supported {
		if t != fallback {
			prefs = append(prefs, t)
		}
	}
	_, idx, conf := language.NewMatcher(prefs).Match(parseAccept(acceptLanguage)...)
	if conf == language.No {
		return fallback
	}
	return prefs[idx]
}

func parseAccept(header string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	return tags
}
