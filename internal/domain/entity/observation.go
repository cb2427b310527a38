package entity

// Observation is a wholesale snapshot of the environment taken at the start
// of every loop iteration. It is never merged with a previous snapshot.
type Observation struct {
	URL        string
	Title      string
	Elements   []ElementDescriptor
	Screenshot *Screenshot
}

// ElementDescriptor describes one interactive element on the page. Index is
// the handle the oracle uses to target the element in click / input_text.
type ElementDescriptor struct {
	Index     int
	Tag       string
	Text      string
	AriaLabel string
	Role      string
	Href      string
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}
