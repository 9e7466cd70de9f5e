package punch

import "errors"

var (
	ErrFlowComplete   = errors.New("all punches for this project and day have already been recorded")
	ErrUnexpectedKind = errors.New("punch kind does not match the next expected punch")
)
