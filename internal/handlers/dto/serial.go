package dto

type SerialIssueRequest struct {
	Product  string `json:"product" validate:"required,max=64"`
	Version  *int   `json:"version" validate:"required"`
	Count    int    `json:"count"`
	Addons   []bool `json:"addons,omitempty"`
	Quantity int    `json:"quantity,omitempty" validate:"omitempty,min=1,max=100"`
}

type IssuedSerial struct {
	Serial string `json:"serial"`
	Digest string `json:"digest"`
	Token  string `json:"token,omitempty"`
}

type SerialIssueResponse struct {
	Serials []IssuedSerial `json:"serials"`
}
