package scenarios

import (
	"github.com/ceidion/wcf/framework"
	"github.com/ceidion/wcf/servicedef"
)

// RunTestSuite runs every scenario against the test service the harness is connected to.
func RunTestSuite(
	harness *framework.TestHarness,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	var status servicedef.ServiceStatus
	statusErr := harness.TestServiceInfo().Decode(&status)

	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := &T{context: c, harness: harness, status: status}
		if statusErr != nil {
			t.Run("service status", func(t *T) {
				t.Errorf("could not decode test service status: %s", statusErr)
			})
			return
		}

		t.Run("message contract", DoMessageContractTests)
		t.Run("echo", DoEchoTests)
		t.Run("faults", DoFaultTests)
	})
}
