package block_slot

// BlockSlotRequest HTTP request model, тело необязательно
type BlockSlotRequest struct {
	Note *string `json:"note,omitempty"`
}
