// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/hookloader/internal/bootstrap"
	"github.com/holomush/hookloader/internal/hook"
	"github.com/holomush/hookloader/internal/host"
	"github.com/holomush/hookloader/internal/i18n"
)

var _ = Describe("Loader on a host runtime", func() {
	var (
		ctx       context.Context
		pluginDir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		pluginDir = GinkgoT().TempDir()

		langDir := filepath.Join(pluginDir, "languages")
		Expect(os.MkdirAll(langDir, 0o750)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(langDir, i18n.FileName("plugin", "fr_FR")), []byte("Tweet: Tweeter\n"), 0o600)).To(Succeed())
	})

	newLoader := func(rt *host.Runtime) *bootstrap.Loader {
		return bootstrap.New(rt, bootstrap.Config{PluginDir: pluginDir})
	}

	Context("in a public context", func() {
		var rt *host.Runtime

		BeforeEach(func() {
			rt = host.New(host.WithLocale("fr_FR"))
			Expect(newLoader(rt).Initialize(ctx)).To(Succeed())
		})

		It("registers five bindings", func() {
			Expect(rt.Hooks().Count()).To(Equal(5))
			Expect(rt.Hooks().Has(hook.EventHeadRender)).To(BeTrue())
		})

		It("orders init handlers by registration", func() {
			var names []string
			for _, reg := range rt.Hooks().Handlers(hook.EventInit) {
				names = append(names, reg.Name)
			}
			Expect(names).To(Equal([]string{"LoadTranslatedText", "PublicInit"}))
		})

		It("loads the plugin catalog when a request is served", func() {
			Expect(rt.Serve(ctx, host.Request{Path: "/"})).To(Succeed())
			Expect(rt.Catalogs().Translate("plugin", "fr_FR", "Tweet")).To(Equal("Tweeter"))
		})

		It("serves feed and not-found requests without error", func() {
			Expect(rt.Serve(ctx, host.Request{Path: "/feed", Feed: true})).To(Succeed())
			Expect(rt.Serve(ctx, host.Request{Path: "/missing", NotFound: true})).To(Succeed())
		})

		It("registers no client scripts", func() {
			Expect(rt.Serve(ctx, host.Request{Path: "/"})).To(Succeed())
			Expect(rt.Scripts().Len()).To(BeZero())
		})

		It("tolerates a locale without a catalog", func() {
			Expect(rt.Serve(ctx, host.Request{Path: "/", Locale: "xx_XX"})).To(Succeed())
			Expect(rt.Catalogs().Loaded("plugin", "xx_XX")).To(BeFalse())
		})
	})

	Context("in an administrative context", func() {
		var rt *host.Runtime

		BeforeEach(func() {
			rt = host.New(host.WithAdmin(true))
			Expect(newLoader(rt).Initialize(ctx)).To(Succeed())
		})

		It("registers four bindings and no head render", func() {
			Expect(rt.Hooks().Count()).To(Equal(4))
			Expect(rt.Hooks().Has(hook.EventHeadRender)).To(BeFalse())
		})

		It("binds AdminInit on init", func() {
			var names []string
			for _, reg := range rt.Hooks().Handlers(hook.EventInit) {
				names = append(names, reg.Name)
			}
			Expect(names).To(ContainElement("AdminInit"))
			Expect(names).NotTo(ContainElement("PublicInit"))
		})

		It("serves an admin request", func() {
			Expect(rt.Serve(ctx, host.Request{Path: "/admin"})).To(Succeed())
		})
	})

	It("registers once even when initialized repeatedly", func() {
		rt := host.New()
		l := newLoader(rt)
		for range 3 {
			Expect(l.Initialize(ctx)).To(Succeed())
		}
		Expect(rt.Hooks().Count()).To(Equal(5))
	})

	It("shares an event with other plugins' handlers", func() {
		rt := host.New()
		Expect(rt.AddAction(ctx, hook.Registration{
			Event:    hook.EventInit,
			Name:     "other-plugin",
			Priority: 1,
			Handler:  func(context.Context, ...any) error { return nil },
		})).To(Succeed())

		Expect(newLoader(rt).Initialize(ctx)).To(Succeed())
		Expect(rt.Hooks().Handlers(hook.EventInit)).To(HaveLen(3))
		Expect(rt.Hooks().Handlers(hook.EventInit)[0].Name).To(Equal("other-plugin"))
	})
})
