package extract

import "strings"

// ocrCorrections maps recognition mistakes that tesseract makes on mixed
// French/English documents to their intended forms. Accented characters lose
// their diacritics at low contrast, and the 'l'/'I' and '6'/'ô' confusions
// show up constantly in scanned CVs.
var ocrCorrections = []struct {
	from string
	to   string
}{
	{"Dipl6mé", "Diplômé"},
	{"Dipl6me", "Diplôme"},
	{"lnformation", "Information"},
	{"lnformatique", "Informatique"},
	{"Systemes", "Systèmes"},
	{"Systeme", "Système"},
	{"francaise", "française"},
	{"francais", "français"},
	{"problemes", "problèmes"},
	{"probleme", "problème"},
	{"succés", "succès"},
	{"Node,js", "Node.js"},
	{"Expressjjs", "Express.js"},
	{"Express,js", "Express.js"},
	{"HTMLS", "HTML5"},
	{"CSS3 ,", "CSS3,"},
	{"lin]", "linkedin"},
	{"DONNEÉES", "données"},
	{"DONNEES", "données"},
	{"experlence", "experience"},
	{"compétentes", "compétences"},
}

var corrector *strings.Replacer

func init() {
	pairs := make([]string, 0, len(ocrCorrections)*2)
	for _, c := range ocrCorrections {
		pairs = append(pairs, c.from, c.to)
	}
	corrector = strings.NewReplacer(pairs...)
}

// CorrectOCRText applies the known recognition fixes and collapses runs of
// blank lines left behind by empty regions of the page.
func CorrectOCRText(text string) string {
	text = corrector.Replace(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			if blank > 1 {
				continue
			}
			out = append(out, "")
			continue
		}
		blank = 0
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
