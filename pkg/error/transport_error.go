package error

type TransportError string

func (err TransportError) Error() string {
	return string(err)
}

func (err TransportError) ErrCode() string {
	return "TRANSPORT_ERROR"
}
