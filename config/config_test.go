package config_test

import (
	"time"

	"github.com/levelfourab/s2-go/config"
	"github.com/levelfourab/s2-go/types"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("StorageClass", func() {
		DescribeTable("maps to and from the service enumeration",
			func(class config.StorageClass, canonical types.StorageClass) {
				Expect(class.Canonical()).To(Equal(canonical))
				Expect(config.FromCanonicalStorageClass(canonical)).To(Equal(class))
				Expect(config.FromCanonicalStorageClass(class.Canonical())).To(Equal(class))
				Expect(config.FromCanonicalStorageClass(canonical).Canonical()).To(Equal(canonical))
			},
			Entry("unspecified", config.StorageClassUnspecified, types.StorageClassUnspecified),
			Entry("standard", config.StorageClassStandard, types.StorageClassStandard),
			Entry("express", config.StorageClassExpress, types.StorageClassExpress),
		)

		It("maps unknown values to unspecified", func() {
			Expect(config.StorageClass("glacier").Canonical()).To(Equal(types.StorageClassUnspecified))
			Expect(config.FromCanonicalStorageClass(types.StorageClass(42))).To(Equal(config.StorageClassUnspecified))
		})

		It("parses names ignoring case", func() {
			class, err := config.ParseStorageClass("Express")
			Expect(err).ToNot(HaveOccurred())
			Expect(class).To(Equal(config.StorageClassExpress))
		})

		It("rejects unknown names", func() {
			_, err := config.ParseStorageClass("glacier")
			Expect(err).To(HaveOccurred())
		})

		It("can be used as a flag value", func() {
			var class config.StorageClass
			Expect(class.Set("standard")).To(Succeed())
			Expect(class.String()).To(Equal("standard"))
			Expect(class.Set("banana")).ToNot(Succeed())
			Expect(class).To(Equal(config.StorageClassStandard))
		})
	})

	Describe("RetentionPolicy", func() {
		It("parses days", func() {
			Expect(config.ParseRetentionPolicy("1d")).To(Equal(config.RetentionPolicyAge{Age: 24 * time.Hour}))
		})

		It("parses weeks", func() {
			Expect(config.ParseRetentionPolicy("1w")).To(Equal(config.RetentionPolicyAge{Age: 7 * 24 * time.Hour}))
		})

		It("parses mixed units", func() {
			Expect(config.ParseRetentionPolicy("1d12h")).To(Equal(config.RetentionPolicyAge{Age: 36 * time.Hour}))
		})

		DescribeTable("parses human readable ages",
			func(input string, age time.Duration) {
				Expect(config.ParseRetentionPolicy(input)).To(Equal(config.RetentionPolicyAge{Age: age}))
			},
			Entry("years", "1y", 8766*time.Hour),
			Entry("spelled out years", "2 years", 2*8766*time.Hour),
			Entry("months", "1M", 2_630_016*time.Second),
			Entry("spelled out months", "1month", 2_630_016*time.Second),
			Entry("parts separated by whitespace", "1d 12h", 36*time.Hour),
			Entry("spelled out days", "2days", 48*time.Hour),
			Entry("minutes", "1min", time.Minute),
			Entry("seconds", "90sec", 90*time.Second),
			Entry("lowercase m is minutes", "5m", 5*time.Minute),
			Entry("surrounding whitespace", "  1w  ", 7*24*time.Hour),
		)

		DescribeTable("rejects input that is not an age",
			func(input string) {
				_, err := config.ParseRetentionPolicyStrict(input)
				Expect(err).To(HaveOccurred())
				Expect(config.ParseRetentionPolicy(input)).To(Equal(config.RetentionPolicyAge{Age: 0}))
			},
			Entry("negative", "-1d"),
			Entry("unknown unit", "1fortnight"),
			Entry("missing unit", "12"),
			Entry("trailing garbage", "1d!"),
			Entry("decimal", "1.5h"),
		)

		It("falls back to a zero age for invalid input", func() {
			Expect(config.ParseRetentionPolicy("banana")).To(Equal(config.RetentionPolicyAge{Age: 0}))
			Expect(config.ParseRetentionPolicy("")).To(Equal(config.RetentionPolicyAge{Age: 0}))
		})

		It("strict parsing returns an error for invalid input", func() {
			_, err := config.ParseRetentionPolicyStrict("banana")
			Expect(err).To(HaveOccurred())
		})

		It("round-trips through the service representation", func() {
			policy := config.ParseRetentionPolicy("1d")
			canonical := config.StreamConfig{RetentionPolicy: policy}.Canonical()
			Expect(canonical.RetentionPolicy).To(Equal(types.RetentionPolicyAge(86400 * time.Second)))

			back := config.FromCanonicalStreamConfig(canonical)
			Expect(back.RetentionPolicy).To(Equal(policy))
		})

		It("keeps an absent policy absent", func() {
			Expect(config.FromCanonicalRetentionPolicy(nil)).To(BeNil())
		})
	})

	Describe("StreamConfig", func() {
		It("resolves a missing storage class to unspecified", func() {
			canonical := config.StreamConfig{}.Canonical()
			Expect(canonical.StorageClass).To(Equal(types.StorageClassUnspecified))
			Expect(canonical.RetentionPolicy).To(BeNil())
		})

		It("converts all fields", func() {
			canonical := config.StreamConfig{
				StorageClass:    config.StorageClassOf(config.StorageClassExpress),
				RetentionPolicy: config.RetainFor(time.Hour),
			}.Canonical()

			Expect(canonical).To(Equal(&types.StreamConfig{
				StorageClass:    types.StorageClassExpress,
				RetentionPolicy: types.RetentionPolicyAge(time.Hour),
			}))
		})

		It("accepts a pointer to a retention policy", func() {
			canonical := config.StreamConfig{
				RetentionPolicy: &config.RetentionPolicyAge{Age: time.Minute},
			}.Canonical()
			Expect(canonical.RetentionPolicy).To(Equal(types.RetentionPolicyAge(time.Minute)))
		})

		It("always surfaces the storage class from the service", func() {
			cfg := config.FromCanonicalStreamConfig(&types.StreamConfig{
				StorageClass: types.StorageClassUnspecified,
			})

			Expect(cfg.StorageClass).ToNot(BeNil())
			Expect(*cfg.StorageClass).To(Equal(config.StorageClassUnspecified))
			Expect(cfg.RetentionPolicy).To(BeNil())
		})

		It("converts nil to nil", func() {
			Expect(config.FromCanonicalStreamConfig(nil)).To(BeNil())
		})
	})

	Describe("BasinConfig", func() {
		It("keeps a missing default stream config missing", func() {
			canonical := config.BasinConfig{}.Canonical()
			Expect(canonical).ToNot(BeNil())
			Expect(canonical.DefaultStreamConfig).To(BeNil())
		})

		It("converts the default stream config", func() {
			sc := config.StreamConfig{
				StorageClass:    config.StorageClassOf(config.StorageClassStandard),
				RetentionPolicy: config.RetainFor(2 * time.Hour),
			}
			canonical := config.BasinConfig{DefaultStreamConfig: &sc}.Canonical()
			Expect(canonical.DefaultStreamConfig).To(Equal(sc.Canonical()))
		})

		It("converts back from the service representation", func() {
			cfg := config.FromCanonicalBasinConfig(&types.BasinConfig{
				DefaultStreamConfig: &types.StreamConfig{
					StorageClass:    types.StorageClassExpress,
					RetentionPolicy: types.RetentionPolicyAge(time.Minute),
				},
			})

			Expect(*cfg.DefaultStreamConfig.StorageClass).To(Equal(config.StorageClassExpress))
			Expect(cfg.DefaultStreamConfig.RetentionPolicy).To(Equal(config.RetentionPolicyAge{Age: time.Minute}))

			empty := config.FromCanonicalBasinConfig(&types.BasinConfig{})
			Expect(empty.DefaultStreamConfig).To(BeNil())
		})
	})

	Describe("AppendRecord", func() {
		It("keeps headers in order", func() {
			record := config.AppendRecord{
				Headers: []config.Header{
					{Name: []byte("b"), Value: []byte("2")},
					{Name: []byte("a"), Value: []byte("1")},
				},
				Body: []byte("body"),
			}

			Expect(record.Canonical()).To(Equal(types.AppendRecord{
				Headers: []types.Header{
					{Name: []byte("b"), Value: []byte("2")},
					{Name: []byte("a"), Value: []byte("1")},
				},
				Body: []byte("body"),
			}))
		})

		It("does not validate content", func() {
			record := config.AppendRecord{Headers: []config.Header{{}}}
			Expect(record.Canonical().Headers).To(HaveLen(1))
			Expect(record.Canonical().Body).To(BeNil())
		})
	})
})
