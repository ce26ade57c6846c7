package payment

import "testing"

func TestSignature_ReferenceDigest(t *testing.T) {
	// Reference digest computed independently with
	// `printf 'order|payment' | openssl dgst -sha256 -hmac secret`.
	tests := []struct {
		name      string
		orderID   string
		paymentID string
		secret    string
		want      string
	}{
		{
			name:      "sandbox triple",
			orderID:   "order_Nxq7CybIRYLMCb",
			paymentID: "pay_29QQoUBi66xm2f",
			secret:    "test_key_secret",
			want:      "4f589adf8ba1faf64ad4ea219427ec2290dd107f73578265491f911409d6de6d",
		},
		{
			name:      "short secret",
			orderID:   "order_IluGWxBm9U8zJ8",
			paymentID: "pay_IluGWxBm9U8zJ8",
			secret:    "abcd1234",
			want:      "3d495ac98d94a1311c81a57f9aa9ebb1147fbbe688f421e47fc497cef1b20fe6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Signature(tt.orderID, tt.paymentID, tt.secret)
			if got != tt.want {
				t.Errorf("Signature() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVerifySignature_Match(t *testing.T) {
	sig := Signature("order_A", "pay_B", "secret")
	if !VerifySignature("order_A", "pay_B", sig, "secret") {
		t.Error("expected matching signature to verify")
	}
}

func TestVerifySignature_SingleCharacterTamper(t *testing.T) {
	sig := Signature("order_A", "pay_B", "secret")

	tampered := []byte(sig)
	if tampered[0] == 'a' {
		tampered[0] = 'b'
	} else {
		tampered[0] = 'a'
	}

	if VerifySignature("order_A", "pay_B", string(tampered), "secret") {
		t.Error("expected tampered signature to fail verification")
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := Signature("order_A", "pay_B", "secret")
	if VerifySignature("order_A", "pay_B", sig, "other-secret") {
		t.Error("expected verification under wrong secret to fail")
	}
}
