package signature

import (
	"github.com/stretchr/testify/mock"
)

type VerifierMock struct {
	mock.Mock
}

func (m *VerifierMock) Verify(key PublicKey, message, sig []byte) error {
	args := m.Called(key, message, sig)
	return args.Error(0)
}
