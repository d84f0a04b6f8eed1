package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iot"
	"github.com/aws/aws-sdk-go-v2/service/iot/types"

	"github.com/allisson/iot-onboarding/internal/config"
	apperrors "github.com/allisson/iot-onboarding/internal/errors"
	"github.com/allisson/iot-onboarding/internal/fleet/domain"
)

// iotAPI is the subset of the IoT Core control-plane API the gateway uses.
type iotAPI interface {
	CreateKeysAndCertificate(
		ctx context.Context,
		params *iot.CreateKeysAndCertificateInput,
		optFns ...func(*iot.Options),
	) (*iot.CreateKeysAndCertificateOutput, error)
	CreateThing(
		ctx context.Context,
		params *iot.CreateThingInput,
		optFns ...func(*iot.Options),
	) (*iot.CreateThingOutput, error)
	DescribeThing(
		ctx context.Context,
		params *iot.DescribeThingInput,
		optFns ...func(*iot.Options),
	) (*iot.DescribeThingOutput, error)
	AttachThingPrincipal(
		ctx context.Context,
		params *iot.AttachThingPrincipalInput,
		optFns ...func(*iot.Options),
	) (*iot.AttachThingPrincipalOutput, error)
	AttachPolicy(
		ctx context.Context,
		params *iot.AttachPolicyInput,
		optFns ...func(*iot.Options),
	) (*iot.AttachPolicyOutput, error)
	ListThings(
		ctx context.Context,
		params *iot.ListThingsInput,
		optFns ...func(*iot.Options),
	) (*iot.ListThingsOutput, error)
	UpdateCertificate(
		ctx context.Context,
		params *iot.UpdateCertificateInput,
		optFns ...func(*iot.Options),
	) (*iot.UpdateCertificateOutput, error)
	DescribeCertificate(
		ctx context.Context,
		params *iot.DescribeCertificateInput,
		optFns ...func(*iot.Options),
	) (*iot.DescribeCertificateOutput, error)
	ListPrincipalThings(
		ctx context.Context,
		params *iot.ListPrincipalThingsInput,
		optFns ...func(*iot.Options),
	) (*iot.ListPrincipalThingsOutput, error)
	DetachThingPrincipal(
		ctx context.Context,
		params *iot.DetachThingPrincipalInput,
		optFns ...func(*iot.Options),
	) (*iot.DetachThingPrincipalOutput, error)
}

// IoTGateway implements Gateway against AWS IoT Core.
type IoTGateway struct {
	client     iotAPI
	policyName string
	logger     *slog.Logger
}

// NewIoTGateway creates an IoTGateway from application configuration.
// Credentials fall back to the default AWS credential chain when no static
// key pair is configured.
func NewIoTGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*IoTGateway, error) {
	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load aws configuration")
	}

	return &IoTGateway{
		client:     iot.NewFromConfig(awsCfg),
		policyName: cfg.IoTPolicyName,
		logger:     logger,
	}, nil
}

// provisioningError marks a registry failure so callers can distinguish it
// from authentication failures.
func provisioningError(message string, err error) error {
	return fmt.Errorf("%s: %w: %w", message, domain.ErrProvisioningFailed, err)
}

// newIoTGatewayWithClient wires a gateway around an existing client. Used by tests.
func newIoTGatewayWithClient(client iotAPI, policyName string, logger *slog.Logger) *IoTGateway {
	return &IoTGateway{
		client:     client,
		policyName: policyName,
		logger:     logger,
	}
}

// ProvisionDevice mints an identity for a device in four registry calls:
// certificate creation, thing creation (or reuse), principal attachment, and
// policy attachment. The private key is only present in the returned identity.
func (g *IoTGateway) ProvisionDevice(
	ctx context.Context,
	deviceID string,
) (*domain.ProvisionedIdentity, error) {
	// Mint an active certificate with a fresh key pair
	certOutput, err := g.client.CreateKeysAndCertificate(ctx, &iot.CreateKeysAndCertificateInput{
		SetAsActive: true,
	})
	if err != nil {
		return nil, provisioningError("failed to create certificate", err)
	}

	g.logger.Info("certificate created",
		slog.String("certificate_id", aws.ToString(certOutput.CertificateId)),
		slog.String("device_id", deviceID),
	)

	// Create the thing, reusing it when the device registered before
	var thingName, thingArn string
	createOutput, err := g.client.CreateThing(ctx, &iot.CreateThingInput{
		ThingName: aws.String(deviceID),
	})
	if err != nil {
		var alreadyExists *types.ResourceAlreadyExistsException
		if !apperrors.As(err, &alreadyExists) {
			return nil, provisioningError("failed to create thing", err)
		}

		describeOutput, describeErr := g.client.DescribeThing(ctx, &iot.DescribeThingInput{
			ThingName: aws.String(deviceID),
		})
		if describeErr != nil {
			return nil, provisioningError("failed to describe existing thing", describeErr)
		}
		thingName = aws.ToString(describeOutput.ThingName)
		thingArn = aws.ToString(describeOutput.ThingArn)

		g.logger.Info("thing already exists, reusing",
			slog.String("thing_name", thingName),
		)
	} else {
		thingName = aws.ToString(createOutput.ThingName)
		thingArn = aws.ToString(createOutput.ThingArn)
	}

	// Attach certificate to thing
	certificateArn := aws.ToString(certOutput.CertificateArn)
	_, err = g.client.AttachThingPrincipal(ctx, &iot.AttachThingPrincipalInput{
		ThingName: aws.String(thingName),
		Principal: aws.String(certificateArn),
	})
	if err != nil {
		return nil, provisioningError("failed to attach certificate to thing", err)
	}

	// Attach operational policy to certificate
	_, err = g.client.AttachPolicy(ctx, &iot.AttachPolicyInput{
		PolicyName: aws.String(g.policyName),
		Target:     aws.String(certificateArn),
	})
	if err != nil {
		return nil, provisioningError("failed to attach policy to certificate", err)
	}

	return &domain.ProvisionedIdentity{
		CertificatePem: aws.ToString(certOutput.CertificatePem),
		PrivateKey:     aws.ToString(certOutput.KeyPair.PrivateKey),
		CertificateID:  aws.ToString(certOutput.CertificateId),
		ThingName:      thingName,
		ThingArn:       thingArn,
	}, nil
}

// ListDevices returns every registered thing, walking all registry pages.
func (g *IoTGateway) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	devices := []*domain.Device{}

	var nextToken *string
	for {
		output, err := g.client.ListThings(ctx, &iot.ListThingsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list things")
		}

		for _, thing := range output.Things {
			devices = append(devices, &domain.Device{
				ThingName:  aws.ToString(thing.ThingName),
				ThingArn:   aws.ToString(thing.ThingArn),
				Attributes: thing.Attributes,
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return devices, nil
}

// RevokeCertificate flips a certificate to REVOKED and detaches it from every
// thing it is attached to. The certificate record itself is kept for audit.
func (g *IoTGateway) RevokeCertificate(ctx context.Context, certificateID string) error {
	_, err := g.client.UpdateCertificate(ctx, &iot.UpdateCertificateInput{
		CertificateId: aws.String(certificateID),
		NewStatus:     types.CertificateStatusRevoked,
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if apperrors.As(err, &notFound) {
			return domain.ErrCertificateNotFound
		}
		return apperrors.Wrap(err, "failed to revoke certificate")
	}

	g.logger.Info("certificate revoked", slog.String("certificate_id", certificateID))

	// Resolve the certificate ARN to detach it from things
	describeOutput, err := g.client.DescribeCertificate(ctx, &iot.DescribeCertificateInput{
		CertificateId: aws.String(certificateID),
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to describe certificate")
	}
	certificateArn := aws.ToString(describeOutput.CertificateDescription.CertificateArn)

	var nextToken *string
	for {
		thingsOutput, err := g.client.ListPrincipalThings(ctx, &iot.ListPrincipalThingsInput{
			Principal: aws.String(certificateArn),
			NextToken: nextToken,
		})
		if err != nil {
			return apperrors.Wrap(err, "failed to list things for certificate")
		}

		for _, thingName := range thingsOutput.Things {
			_, err := g.client.DetachThingPrincipal(ctx, &iot.DetachThingPrincipalInput{
				ThingName: aws.String(thingName),
				Principal: aws.String(certificateArn),
			})
			if err != nil {
				return apperrors.Wrap(err, "failed to detach certificate from thing")
			}

			g.logger.Info("certificate detached",
				slog.String("certificate_id", certificateID),
				slog.String("thing_name", thingName),
			)
		}

		if thingsOutput.NextToken == nil {
			break
		}
		nextToken = thingsOutput.NextToken
	}

	return nil
}
