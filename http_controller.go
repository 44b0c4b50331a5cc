package console

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-console/repository"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

const draftKindOnboarding = "onboarding"

const (
	stageKey = "stage"
	phoneKey = "phone"

	stageCredentials = "credentials"
	stageOTP         = "otp"
)

func RegisterConsoleRoutes[T any](app router.Router[T], opts ...ConsoleControllerOption) {

	controller := NewConsoleController(opts...)

	app.
		Get(controller.Routes.Login,
			controller.LoginShow,
		).
		SetName("sign-in.get")

	app.
		Post(
			controller.Routes.Login,
			controller.LoginPost,
		).
		SetName("sign-in.post")

	app.Post(controller.Routes.LoginOTP, controller.LoginOTPSend).
		SetName("sign-in-otp.post")
	app.Post(fmt.Sprintf("%s/verify", controller.Routes.LoginOTP), controller.LoginOTPVerify).
		SetName("sign-in-otp-verify.post")

	app.Get(controller.Routes.Logout, controller.LogOut).SetName("sign-out.get")

	app.Get(controller.Routes.Signup, controller.SignupShow).
		SetName("signup.get")
	app.Post(controller.Routes.Signup, controller.SignupPost).
		SetName("signup.post")
	app.Post(fmt.Sprintf("%s/verify", controller.Routes.Signup), controller.SignupVerify).
		SetName("signup-verify.post")

	app.Get(controller.Routes.Onboarding, controller.OnboardingShow).
		SetName("onboarding.get")
	app.Post(controller.Routes.Onboarding, controller.OnboardingPost).
		SetName("onboarding.post")

	app.Get(controller.Routes.Dashboard, controller.DashboardShow).
		SetName("dashboard.get")
}

type ConsoleControllerRoutes struct {
	Login      string
	LoginOTP   string
	Logout     string
	Signup     string
	Onboarding string
	Dashboard  string
}

type ConsoleControllerViews struct {
	Login      string
	Signup     string
	Onboarding string
	Dashboard  string
}

type ConsoleController struct {
	Debug        bool
	Logger       Logger
	Session      *SessionManager
	Auth         *AuthAPI
	Seller       *SellerAPI
	Dashboard    *DashboardAPI
	Gate         *StatusGate
	Drafts       *repository.DraftRepository
	Routes       *ConsoleControllerRoutes
	Views        *ConsoleControllerViews
	ErrorHandler router.ErrorHandler
}

type ConsoleControllerOption func(*ConsoleController) *ConsoleController

func NewConsoleController(opts ...ConsoleControllerOption) *ConsoleController {
	c := &ConsoleController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &ConsoleControllerRoutes{
			Login:      "/auth/login",
			LoginOTP:   "/auth/login/otp",
			Logout:     "/auth/logout",
			Signup:     "/auth/signup",
			Onboarding: "/seller/onboarding",
			Dashboard:  "/dashboard",
		},
		Views: &ConsoleControllerViews{
			Login:      "auth/login",
			Signup:     "auth/signup",
			Onboarding: "seller/onboarding",
			Dashboard:  "dashboard/index",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Session == nil {
		panic("Missing SessionManager in console controller...")
	}

	if c.Auth == nil {
		panic("Missing AuthAPI in console controller...")
	}

	if c.Seller == nil {
		panic("Missing SellerAPI in console controller...")
	}

	return c
}

func WithControllerDebug(debug bool) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Debug = debug
		return c
	}
}

func WithControllerLogger(logger Logger) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithControllerSession(session *SessionManager) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Session = session
		return c
	}
}

func WithControllerAuth(auth *AuthAPI) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Auth = auth
		return c
	}
}

func WithControllerSeller(seller *SellerAPI) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Seller = seller
		return c
	}
}

func WithControllerDashboard(dashboard *DashboardAPI) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Dashboard = dashboard
		return c
	}
}

func WithControllerGate(gate *StatusGate) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Gate = gate
		return c
	}
}

func WithControllerDrafts(drafts *repository.DraftRepository) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Drafts = drafts
		return c
	}
}

func (a *ConsoleController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
		stageKey: stageCredentials,
	})
}

func (a *ConsoleController) LoginPost(ctx router.Context) error {
	payload := new(PasswordLoginRequest)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			stageKey:     stageCredentials,
		})
	}

	if a.Debug {
		fmt.Println("======= CONSOLE LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("============================")
	}

	res, err := a.Auth.LoginWithPassword(ctx.Context(), *payload)
	if err != nil {
		switch {
		case IsAuthRejected(err):
			errors["authentication"] = "Invalid email or password"
		case IsValidationRejected(err):
			errors["authentication"] = ValidationMessage(err)
		default:
			errors["authentication"] = "Login is unavailable right now, try again"
		}
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
			stageKey: stageCredentials,
		})
	}

	return a.finishLogin(ctx, res.Token)
}

// OTPLoginPayload is the phone form payload
type OTPLoginPayload struct {
	Phone string `form:"phone" json:"phone"`
	OTP   string `form:"otp" json:"otp"`
}

// Validate will validate the payload
func (r OTPLoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Phone, validation.Required),
	)
}

func (a *ConsoleController) LoginOTPSend(ctx router.Context) error {
	payload := new(OTPLoginPayload)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			stageKey:     stageCredentials,
		})
	}

	if err := a.Auth.SendLoginOTP(ctx.Context(), payload.Phone); err != nil {
		a.Logger.Error("send login otp: ", "error", err)
		if IsValidationRejected(err) {
			errors["otp"] = ValidationMessage(err)
		} else {
			errors["otp"] = "Could not send the code, check the phone number"
		}
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
			stageKey: stageCredentials,
		})
	}

	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": errors,
		"record": payload,
		stageKey: stageOTP,
		phoneKey: payload.Phone,
	})
}

func (a *ConsoleController) LoginOTPVerify(ctx router.Context) error {
	payload := new(OTPLoginPayload)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	res, err := a.Auth.VerifyLoginOTP(ctx.Context(), payload.Phone, payload.OTP)
	if err != nil {
		switch {
		case IsAuthRejected(err):
			errors["otp"] = "That code did not match, request a new one"
		case IsValidationRejected(err):
			errors["otp"] = ValidationMessage(err)
		default:
			errors["otp"] = "Verification is unavailable right now, try again"
		}
		return ctx.Render(a.Views.Login, router.ViewContext{
			"errors": errors,
			"record": payload,
			stageKey: stageOTP,
			phoneKey: payload.Phone,
		})
	}

	return a.finishLogin(ctx, res.Token)
}

// finishLogin pairs the credential writes and sends the seller back to
// wherever the guard bounced them from.
func (a *ConsoleController) finishLogin(ctx router.Context, token string) error {
	if err := a.Session.LoginWithToken(ctx, token); err != nil {
		a.Logger.Warn("post-login session resolve: ", "error", err)
	}

	redirect := a.Session.GetRedirect(ctx)

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Welcome back",
	}).Redirect(redirect, fiber.StatusSeeOther)
}

func (a *ConsoleController) LogOut(ctx router.Context) error {
	a.Session.Logout(ctx)
	return ctx.Redirect(a.Routes.Login, router.StatusTemporaryRedirect)
}

func (a *ConsoleController) SignupShow(ctx router.Context) error {
	return ctx.Render(a.Views.Signup, router.ViewContext{
		"errors": map[string]string{},
		"record": SignupRequest{},
		stageKey: stageCredentials,
	})
}

func (a *ConsoleController) SignupPost(ctx router.Context) error {
	payload := new(SignupRequest)

	if err := ctx.Bind(payload); err != nil {
		errors := map[string]string{}
		errors["form"] = "Failed to parse form"
		a.Logger.Error("signup parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Signup, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		errors := FormatValidationErrorToMap(err)
		a.Logger.Error("signup validate payload: ", "error", err)

		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(a.Views.Signup, router.ViewContext{
			"record":     payload,
			"validation": errors,
		})
	}

	if err := a.Auth.Signup(ctx.Context(), *payload); err != nil {
		a.Logger.Error("signup error: ", "error", err)

		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not create the account",
		}).Render(a.Views.Signup, router.ViewContext{
			"record": payload,
			"errors": []string{err.Error()},
		})
	}

	return ctx.Render(a.Views.Signup, router.ViewContext{
		"errors": map[string]string{},
		"record": payload,
		stageKey: stageOTP,
		phoneKey: payload.Phone,
	})
}

func (a *ConsoleController) SignupVerify(ctx router.Context) error {
	payload := new(OTPLoginPayload)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	res, err := a.Auth.VerifySignupOTP(ctx.Context(), payload.Phone, payload.OTP)
	if err != nil {
		errors["otp"] = "That code did not match, request a new one"
		return ctx.Render(a.Views.Signup, router.ViewContext{
			"errors": errors,
			"record": payload,
			stageKey: stageOTP,
			phoneKey: payload.Phone,
		})
	}

	if err := a.Session.LoginWithToken(ctx, res.Token); err != nil {
		a.Logger.Warn("post-signup session resolve: ", "error", err)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created",
	}).Redirect(a.Routes.Onboarding, fiber.StatusSeeOther)
}

func (a *ConsoleController) OnboardingShow(ctx router.Context) error {
	record := &OnboardingRequest{}

	if draft := a.loadDraft(ctx); draft != nil {
		record.BusinessName, _ = draft.Payload["business_name"].(string)
		record.BusinessType, _ = draft.Payload["business_type"].(string)
		record.PANNumber, _ = draft.Payload["pan_number"].(string)
		record.GSTNumber, _ = draft.Payload["gst_number"].(string)
		record.AadhaarLast4, _ = draft.Payload["aadhaar_last4"].(string)
	}

	return ctx.Render(a.Views.Onboarding, router.ViewContext{
		"errors": map[string]string{},
		"record": record,
	})
}

func (a *ConsoleController) OnboardingPost(ctx router.Context) error {
	payload := new(OnboardingRequest)

	if err := ctx.Bind(payload); err != nil {
		errors := map[string]string{}
		errors["form"] = "Failed to parse form"
		a.Logger.Error("onboarding parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Onboarding, router.ViewContext{
			"errors": errors,
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		errors := FormatValidationErrorToMap(err)
		a.Logger.Error("onboarding validate payload: ", "error", err)
		a.saveDraft(ctx, payload)

		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(a.Views.Onboarding, router.ViewContext{
			"record":     payload,
			"validation": errors,
		})
	}

	if a.Debug {
		fmt.Println("======= CONSOLE ONBOARDING ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=================================")
	}

	if err := a.Seller.SubmitRequest(ctx.Context(), *payload, WithLocalErrorHandling()); err != nil {
		a.Logger.Error("onboarding submit: ", "error", err)
		a.saveDraft(ctx, payload)

		message := "Could not submit the request, try again"
		if IsValidationRejected(err) {
			message = ValidationMessage(err)
		}

		return flash.WithError(ctx, router.ViewContext{
			"error_message":  message,
			"system_message": "Error submitting request",
		}).Render(a.Views.Onboarding, router.ViewContext{
			"record": payload,
			"errors": []string{message},
		})
	}

	a.deleteDraft(ctx)
	if a.Gate != nil {
		a.Gate.Invalidate()
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Request submitted for review",
	}).Redirect(a.Routes.Dashboard, fiber.StatusSeeOther)
}

func (a *ConsoleController) DashboardShow(ctx router.Context) error {
	if a.Dashboard == nil {
		return ctx.Render(a.Views.Dashboard, router.ViewContext{
			"data": &DashboardData{},
		})
	}

	data, err := a.Dashboard.Overview(ctx.Context())
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.Render(a.Views.Dashboard, router.ViewContext{
		"data":    data,
		"partial": data.Partial,
	})
}

func (a *ConsoleController) loadDraft(ctx router.Context) *repository.FormDraftModel {
	owner := a.draftOwner()
	if a.Drafts == nil || owner == "" {
		return nil
	}

	draft, err := a.Drafts.FindByOwnerAndKind(ctx.Context(), owner, draftKindOnboarding)
	if err != nil {
		return nil
	}
	return draft
}

func (a *ConsoleController) saveDraft(ctx router.Context, payload *OnboardingRequest) {
	owner := a.draftOwner()
	if a.Drafts == nil || owner == "" {
		return
	}

	err := a.Drafts.Save(ctx.Context(), &repository.FormDraftModel{
		OwnerID: owner,
		Kind:    draftKindOnboarding,
		Payload: map[string]any{
			"business_name": payload.BusinessName,
			"business_type": payload.BusinessType,
			"pan_number":    payload.PANNumber,
			"gst_number":    payload.GSTNumber,
			"aadhaar_last4": payload.AadhaarLast4,
		},
	})
	if err != nil {
		a.Logger.Warn("save onboarding draft: ", "error", err)
	}
}

func (a *ConsoleController) deleteDraft(ctx router.Context) {
	owner := a.draftOwner()
	if a.Drafts == nil || owner == "" {
		return
	}

	if err := a.Drafts.Delete(ctx.Context(), owner, draftKindOnboarding); err != nil {
		a.Logger.Warn("delete onboarding draft: ", "error", err)
	}
}

func (a *ConsoleController) draftOwner() string {
	session := a.Session.Session()
	if session.User == nil {
		return ""
	}
	return session.User.ID
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field to message map for view rendering.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
