package extractor

// disabledOCR fails every recognition with the error that prevented the
// engine from starting, so images degrade to an extraction error.
type disabledOCR struct {
	err error
}

// DisabledOCR returns an OCR engine whose Recognize always fails with err.
func DisabledOCR(err error) OCR {
	return disabledOCR{err: err}
}

func (d disabledOCR) Recognize([]byte) (string, error) {
	return "", d.err
}
