package slowness_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSlowness(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Slowness Suite")
}
