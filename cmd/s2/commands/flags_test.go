package commands

import (
	"bytes"
	"time"

	"github.com/levelfourab/s2-go/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
)

var _ = Describe("Stream config flags", func() {
	var flags *streamConfigFlags
	var fs *pflag.FlagSet

	BeforeEach(func() {
		flags = &streamConfigFlags{}
		fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.register(fs)
	})

	It("builds an empty mask without flags", func() {
		Expect(fs.Parse(nil)).To(Succeed())

		Expect(flags.changed(fs)).To(BeFalse())
		Expect(flags.mask(fs)).To(BeEmpty())
	})

	It("masks only the storage class", func() {
		Expect(fs.Parse([]string{"--storage-class", "Express"})).To(Succeed())

		cfg, err := flags.streamConfig(fs)
		Expect(err).ToNot(HaveOccurred())
		Expect(*cfg.StorageClass).To(Equal(config.StorageClassExpress))
		Expect(cfg.RetentionPolicy).To(BeNil())
		Expect(flags.mask(fs)).To(Equal([]string{config.StorageClassPath}))
	})

	It("masks both fields", func() {
		Expect(fs.Parse([]string{"--storage-class=standard", "--retention-policy=1w"})).To(Succeed())

		cfg, err := flags.streamConfig(fs)
		Expect(err).ToNot(HaveOccurred())
		Expect(*cfg.StorageClass).To(Equal(config.StorageClassStandard))
		Expect(cfg.RetentionPolicy).To(Equal(config.RetentionPolicyAge{Age: 7 * 24 * time.Hour}))
		Expect(flags.mask(fs)).To(Equal([]string{config.StorageClassPath, config.RetentionPolicyPath}))
	})

	It("clears the retention policy when given as empty", func() {
		Expect(fs.Parse([]string{"--retention-policy="})).To(Succeed())

		cfg, err := flags.streamConfig(fs)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.RetentionPolicy).To(BeNil())
		Expect(flags.mask(fs)).To(Equal([]string{config.RetentionPolicyPath}))
	})

	It("rejects an invalid retention policy", func() {
		Expect(fs.Parse([]string{"--retention-policy=banana"})).To(Succeed())

		_, err := flags.streamConfig(fs)
		Expect(err).To(MatchError(ContainSubstring("banana")))
	})

	It("rejects an unknown storage class", func() {
		Expect(fs.Parse([]string{"--storage-class=fast"})).ToNot(Succeed())
	})
})

var _ = Describe("Output", func() {
	It("writes stream configs as YAML", func() {
		var buf bytes.Buffer
		err := writeYAML(&buf, newStreamConfigView(&config.StreamConfig{
			StorageClass:    config.StorageClassOf(config.StorageClassExpress),
			RetentionPolicy: config.RetainFor(24 * time.Hour),
		}))
		Expect(err).ToNot(HaveOccurred())
		Expect(buf.String()).To(Equal("storage_class: express\nretention_policy: 24h0m0s\n"))
	})

	It("leaves out a missing default stream config", func() {
		var buf bytes.Buffer
		Expect(writeYAML(&buf, newBasinConfigView(&config.BasinConfig{}))).To(Succeed())
		Expect(buf.String()).To(Equal("{}\n"))
	})
})
