package sbc

type RespondInput struct {
	Action          string
	RejectionReason string
}
