package main

import (
	"github.com/rs/zerolog/log"

	toolx "github.com/cmos-collections/callcore/agent/tool"
	transactionx "github.com/cmos-collections/callcore/agent/transaction"
	transferx "github.com/cmos-collections/callcore/agent/transfer"
	verifyx "github.com/cmos-collections/callcore/agent/verify"
	configx "github.com/cmos-collections/callcore/pkg/config"
	directoryx "github.com/cmos-collections/callcore/pkg/directory"
	_ "github.com/cmos-collections/callcore/pkg/logger/autoload"
	stripegwx "github.com/cmos-collections/callcore/pkg/stripegw"
	telephonyx "github.com/cmos-collections/callcore/pkg/telephony"
)

type AppConfig struct {
	// EscalationNumber is the fixed human-agent destination for transfers.
	EscalationNumber string `envconfig:"ESCALATION_NUMBER" required:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("CMOS")

	dirCfg := configx.MustNew[directoryx.Config]("DIRECTORY")
	directory := directoryx.MustNew(*dirCfg)

	stripeCfg := configx.MustNew[stripegwx.Config]("STRIPE")
	gateway := stripegwx.MustNew(*stripeCfg)

	twilioCfg := configx.MustNew[telephonyx.Config]("TWILIO")
	controlPlane := telephonyx.MustNew(*twilioCfg)

	payments, err := transactionx.New(gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("build transaction coordinator")
	}

	transfers, err := transferx.New(controlPlane, appCfg.EscalationNumber)
	if err != nil {
		log.Fatal().Err(err).Msg("build transfer coordinator")
	}

	suite, err := toolx.NewSuite(directory, verifyx.NewEngine(), payments, transfers)
	if err != nil {
		log.Fatal().Err(err).Msg("build tool suite")
	}

	log.Info().
		Int("tools", len(toolx.Infos())).
		Msg("call tool surface ready; sessions are created per call by the dialogue orchestrator")
	_ = suite
}
