package engine

// tableState is the per-table protocol:
//
//	pending -> ddlReady -> tableCreated -> dataCopied
//
// with failure terminals ddlFailed, createFailed and copyFailed. States only
// move forward.
type tableState int

const (
	statePending tableState = iota
	stateDDLReady
	stateTableCreated
	stateDataCopied
	stateDDLFailed
	stateCreateFailed
	stateCopyFailed
)

var stateNames = map[tableState]string{
	statePending:      "PENDING",
	stateDDLReady:     "DDL_READY",
	stateTableCreated: "TABLE_CREATED",
	stateDataCopied:   "DATA_COPIED",
	stateDDLFailed:    "DDL_FAILED",
	stateCreateFailed: "CREATE_FAILED",
	stateCopyFailed:   "COPY_FAILED",
}

func (s tableState) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

func (s tableState) terminal() bool {
	switch s {
	case stateDataCopied, stateDDLFailed, stateCreateFailed, stateCopyFailed:
		return true
	}
	return false
}

// status maps a finished state to the reported Status. ddlReady is only
// finished in dry-run mode.
func (s tableState) status(rows int64) Status {
	switch s {
	case stateDataCopied:
		if rows == 0 {
			return StatusEmptySkippedData
		}
		return StatusSuccess
	case stateDDLReady:
		return StatusSuccess
	case stateDDLFailed:
		return StatusDDLFailed
	case stateCreateFailed:
		return StatusCreateFailed
	default:
		return StatusCopyFailed
	}
}
