package jetstream_test

import (
	"context"
	"log/slog"
	"strings"
	"time"

	s2js "github.com/levelfourab/s2-go/internal/jetstream"
	"github.com/levelfourab/s2-go/types"
	"github.com/nats-io/nats.go/jetstream"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Basins", func() {
	var client *s2js.Client
	var js jetstream.JetStream

	BeforeEach(func() {
		_, js = connect(natsServer)
		client = s2js.New(js, slog.New(slog.NewTextHandler(GinkgoWriter, nil)))
	})

	Describe("CreateBasin", func() {
		It("stores the basin", func(ctx context.Context) {
			name := basinName()
			info, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
			Expect(err).ToNot(HaveOccurred())
			Expect(info.Name).To(Equal(name))
			Expect(info.CreatedAt).To(BeTemporally("~", time.Now(), time.Minute))

			kv, err := js.KeyValue(ctx, "s2-basins")
			Expect(err).ToNot(HaveOccurred())
			_, err = kv.Get(ctx, name)
			Expect(err).ToNot(HaveOccurred())
		})

		It("fails for an existing basin", func(ctx context.Context) {
			name := basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
			Expect(err).ToNot(HaveOccurred())

			_, err = client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
			Expect(types.IsAlreadyExists(err)).To(BeTrue())
		})

		It("fails for a negative default retention age", func(ctx context.Context) {
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{
				Basin: basinName(),
				Config: &types.BasinConfig{
					DefaultStreamConfig: &types.StreamConfig{RetentionPolicy: types.RetentionPolicyAge(-time.Hour)},
				},
			})
			Expect(types.ErrorCode(err)).To(Equal(types.CodeInvalidArgument))
		})

		DescribeTable("rejects invalid names",
			func(ctx context.Context, name string) {
				_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
				Expect(types.ErrorCode(err)).To(Equal(types.CodeInvalidArgument))
			},
			Entry("too short", "short"),
			Entry("too long", strings.Repeat("a", 49)),
			Entry("uppercase", "My-Basin-Name"),
			Entry("leading hyphen", "-my-basin"),
			Entry("trailing hyphen", "my-basin-"),
			Entry("underscore", "my_basin_name"),
		)
	})

	Describe("ListBasins", func() {
		var prefix string

		BeforeEach(func(ctx context.Context) {
			prefix = basinName()[:20]
			for _, suffix := range []string{"-a", "-b", "-c"} {
				_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: prefix + suffix})
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("lists basins with the prefix", func(ctx context.Context) {
			res, err := client.ListBasins(ctx, &types.ListBasinsRequest{Prefix: prefix})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.HasMore).To(BeFalse())
			Expect(basinNames(res)).To(Equal([]string{prefix + "-a", prefix + "-b", prefix + "-c"}))
		})

		It("pages with a limit", func(ctx context.Context) {
			limit := uint64(2)
			res, err := client.ListBasins(ctx, &types.ListBasinsRequest{Prefix: prefix, Limit: &limit})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.HasMore).To(BeTrue())
			Expect(basinNames(res)).To(Equal([]string{prefix + "-a", prefix + "-b"}))

			res, err = client.ListBasins(ctx, &types.ListBasinsRequest{
				Prefix:     prefix,
				StartAfter: prefix + "-b",
				Limit:      &limit,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(res.HasMore).To(BeFalse())
			Expect(basinNames(res)).To(Equal([]string{prefix + "-c"}))
		})
	})

	Describe("DeleteBasin", func() {
		It("deletes the basin and its streams", func(ctx context.Context) {
			name := basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
			Expect(err).ToNot(HaveOccurred())

			_, err = client.Basin(name).CreateStream(ctx, &types.CreateStreamRequest{Stream: "orders"})
			Expect(err).ToNot(HaveOccurred())

			Expect(client.DeleteBasin(ctx, &types.DeleteBasinRequest{Basin: name})).To(Succeed())

			_, err = client.GetBasinConfig(ctx, name)
			Expect(types.IsNotFound(err)).To(BeTrue())

			lister := js.StreamNames(ctx, jetstream.WithStreamListSubject("s2."+name+".*"))
			var remaining []string
			for n := range lister.Name() {
				remaining = append(remaining, n)
			}
			Expect(lister.Err()).ToNot(HaveOccurred())
			Expect(remaining).To(BeEmpty())
		})

		It("fails for a missing basin", func(ctx context.Context) {
			err := client.DeleteBasin(ctx, &types.DeleteBasinRequest{Basin: basinName()})
			Expect(types.IsNotFound(err)).To(BeTrue())
		})

		It("ignores a missing basin with IfExists", func(ctx context.Context) {
			err := client.DeleteBasin(ctx, &types.DeleteBasinRequest{Basin: basinName(), IfExists: true})
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("GetBasinConfig", func() {
		It("returns no default stream config when none was given", func(ctx context.Context) {
			name := basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{Basin: name})
			Expect(err).ToNot(HaveOccurred())

			cfg, err := client.GetBasinConfig(ctx, name)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultStreamConfig).To(BeNil())
		})

		It("returns the stored default stream config", func(ctx context.Context) {
			name := basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{
				Basin: name,
				Config: &types.BasinConfig{
					DefaultStreamConfig: &types.StreamConfig{
						StorageClass:    types.StorageClassExpress,
						RetentionPolicy: types.RetentionPolicyAge(48 * time.Hour),
					},
				},
			})
			Expect(err).ToNot(HaveOccurred())

			cfg, err := client.GetBasinConfig(ctx, name)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultStreamConfig).To(Equal(&types.StreamConfig{
				StorageClass:    types.StorageClassExpress,
				RetentionPolicy: types.RetentionPolicyAge(48 * time.Hour),
			}))
		})

		It("keeps an absent retention policy absent", func(ctx context.Context) {
			name := basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{
				Basin: name,
				Config: &types.BasinConfig{
					DefaultStreamConfig: &types.StreamConfig{StorageClass: types.StorageClassStandard},
				},
			})
			Expect(err).ToNot(HaveOccurred())

			cfg, err := client.GetBasinConfig(ctx, name)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultStreamConfig.StorageClass).To(Equal(types.StorageClassStandard))
			Expect(cfg.DefaultStreamConfig.RetentionPolicy).To(BeNil())
		})
	})

	Describe("ReconfigureBasin", func() {
		var name string

		BeforeEach(func(ctx context.Context) {
			name = basinName()
			_, err := client.CreateBasin(ctx, &types.CreateBasinRequest{
				Basin: name,
				Config: &types.BasinConfig{
					DefaultStreamConfig: &types.StreamConfig{
						StorageClass:    types.StorageClassExpress,
						RetentionPolicy: types.RetentionPolicyAge(24 * time.Hour),
					},
				},
			})
			Expect(err).ToNot(HaveOccurred())
		})

		It("only applies masked fields", func(ctx context.Context) {
			cfg, err := client.ReconfigureBasin(ctx, &types.ReconfigureBasinRequest{
				Basin: name,
				Config: &types.BasinConfig{
					DefaultStreamConfig: &types.StreamConfig{
						StorageClass:    types.StorageClassStandard,
						RetentionPolicy: types.RetentionPolicyAge(time.Hour),
					},
				},
				Mask: []string{"default_stream_config.storage_class"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultStreamConfig.StorageClass).To(Equal(types.StorageClassStandard))
			Expect(cfg.DefaultStreamConfig.RetentionPolicy).To(Equal(types.RetentionPolicyAge(24 * time.Hour)))

			stored, err := client.GetBasinConfig(ctx, name)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored).To(Equal(cfg))
		})

		It("replaces the whole default stream config", func(ctx context.Context) {
			cfg, err := client.ReconfigureBasin(ctx, &types.ReconfigureBasinRequest{
				Basin:  name,
				Config: &types.BasinConfig{},
				Mask:   []string{"default_stream_config"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.DefaultStreamConfig).To(BeNil())
		})

		It("rejects unknown paths", func(ctx context.Context) {
			_, err := client.ReconfigureBasin(ctx, &types.ReconfigureBasinRequest{
				Basin:  name,
				Config: &types.BasinConfig{},
				Mask:   []string{"default_stream_config.replicas"},
			})
			Expect(types.ErrorCode(err)).To(Equal(types.CodeInvalidArgument))
		})

		It("fails for a missing basin", func(ctx context.Context) {
			_, err := client.ReconfigureBasin(ctx, &types.ReconfigureBasinRequest{
				Basin: basinName(),
				Mask:  []string{"default_stream_config"},
			})
			Expect(types.IsNotFound(err)).To(BeTrue())
		})
	})
})

func basinNames(res *types.ListBasinsResponse) []string {
	out := make([]string, len(res.Basins))
	for i, b := range res.Basins {
		out[i] = b.Name
	}
	return out
}
