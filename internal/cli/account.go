package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OKaluzny/sui-tips/internal/wallet"
)

type accountInfo struct {
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Path      string `json:"path"`
	Mnemonic  string `json:"mnemonic,omitempty"`
}

func newAccountCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the address of the configured wallet",
		RunE: func(_ *cobra.Command, _ []string) error {
			ks, err := a.keystore()
			if err != nil {
				return err
			}
			info, err := describe(ks, a.cfg.AccountIndex)
			if err != nil {
				return err
			}
			return a.printAccount(info)
		},
	}
	cmd.AddCommand(newAccountNewCmd(a))
	return cmd
}

func newAccountNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a new mnemonic and print its first address",
		Long: `Generate a new 12-word mnemonic. Store it as SUI_MNEMONIC to use it
with send. Anyone holding the mnemonic controls the funds.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			mnemonic, err := wallet.NewMnemonic()
			if err != nil {
				return err
			}
			ks, err := wallet.NewKeystore(mnemonic)
			if err != nil {
				return err
			}
			info, err := describe(ks, 0)
			if err != nil {
				return err
			}
			info.Mnemonic = mnemonic
			return a.printAccount(info)
		},
	}
}

func describe(ks *wallet.Keystore, index uint32) (accountInfo, error) {
	s, err := ks.Derive(0, index)
	if err != nil {
		return accountInfo{}, err
	}
	return accountInfo{
		Address:   s.Address().String(),
		PublicKey: s.SuiPublicKey(),
		Path:      s.Path(),
	}, nil
}

func (a *app) printAccount(info accountInfo) error {
	if a.jsonOut {
		return printJSON(a.out, info)
	}
	if info.Mnemonic != "" {
		fmt.Fprintf(a.out, "Mnemonic:   %s\n", info.Mnemonic)
	}
	fmt.Fprintf(a.out, "Address:    %s\n", info.Address)
	fmt.Fprintf(a.out, "Public key: %s\n", info.PublicKey)
	fmt.Fprintf(a.out, "Path:       %s\n", info.Path)
	return nil
}
